package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Save inserts u and sets its ID.  Email is stored exactly as given.
func (r *UserRepo) Save(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (full_name, email, password) VALUES (?,?,?)",
		u.FullName, u.Email, u.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// FindByEmail fetches a user by exact email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,email,password FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindByID fetches a user by id.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,email,password FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email=?", email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
