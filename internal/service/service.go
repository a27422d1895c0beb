// Package service composes repository results into the values the pages
// display and hosts the seat purchase path.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/repository"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = repository.ErrNotFound
	// ErrEmailExists rejects a registration for an email already in use.
	ErrEmailExists = repository.ErrEmailExists
	// ErrSeatTaken is the storage-level rejection of a duplicate seat.
	ErrSeatTaken = repository.ErrSeatTaken
	// ErrSeatUnavailable rejects a purchase of a seat that is already sold,
	// whether the early check or the unique key caught it.
	ErrSeatUnavailable = errors.New("seat unavailable")
	// ErrInvalidCredentials rejects a login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPasswordTooLong rejects a registration whose password exceeds
	// bcrypt's 72 byte input limit.
	ErrPasswordTooLong = errors.New("password too long")
)

// Placeholders shown when a referenced row is missing.
const (
	UnknownGenre = "unknown genre"
	UnknownFilm  = "unknown film"
	UnknownHall  = "unknown hall"
)

type GenreStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Genre, error)
}

type HallStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Hall, error)
}

type FileStore interface {
	FindByID(ctx context.Context, id uint64) (*model.File, error)
}

type FilmStore interface {
	FindAll(ctx context.Context) ([]*model.Film, error)
	FindByID(ctx context.Context, id uint64) (*model.Film, error)
}

type FilmSessionStore interface {
	FindAll(ctx context.Context) ([]*model.FilmSession, error)
	FindByID(ctx context.Context, id uint64) (*model.FilmSession, error)
	FindByFilmID(ctx context.Context, filmID uint64) ([]*model.FilmSession, error)
	FindUpcomingByFilmID(ctx context.Context, filmID uint64, now time.Time) ([]*model.FilmSession, error)
	FindOnDay(ctx context.Context, day time.Time) ([]*model.FilmSession, error)
}

type TicketStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Ticket, error)
	FindBySessionID(ctx context.Context, sessionID uint64) ([]*model.Ticket, error)
	FindByUserID(ctx context.Context, userID uint64) ([]*model.Ticket, error)
	IsPlaceTaken(ctx context.Context, sessionID uint64, row, place uint32) (bool, error)
	Save(ctx context.Context, t *model.Ticket) error
	CountSold(ctx context.Context, sessionID uint64) (int, error)
	DeleteByID(ctx context.Context, id uint64) (bool, error)
}

type UserStore interface {
	Save(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
