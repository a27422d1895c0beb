package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/utils"
)

// UserService registers and authenticates visitors.  Passwords are kept
// as bcrypt hashes.
type UserService struct {
	users UserStore
	cost  int
}

func NewUserService(users UserStore, bcryptCost int) *UserService {
	return &UserService{users: users, cost: bcryptCost}
}

// Register stores a new user.  An email already in use yields
// ErrEmailExists, whether the early check or the unique key caught it.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (*model.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}
	hash, err := utils.HashPassword(password, s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{FullName: fullName, Email: email, PasswordHash: hash}
	if err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user whose email matches exactly and whose
// stored hash verifies password.  Empty passwords never match.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" || !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}
