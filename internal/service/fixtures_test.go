package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/repository"
	"github.com/iliyamo/cinema-ticket-booking/internal/testutil"
)

// env is a fully wired service layer over an in-memory database.
type env struct {
	db       *sql.DB
	genres   *repository.GenreRepo
	halls    *repository.HallRepo
	files    *repository.FileRepo
	films    *repository.FilmRepo
	sessions *repository.FilmSessionRepo
	tickets  *repository.TicketRepo
	users    *repository.UserRepo

	filmSvc    *FilmService
	sessionSvc *FilmSessionService
	hallSvc    *HallService
}

func newEnv(t *testing.T) *env {
	db := testutil.NewDB(t)
	e := &env{
		db:       db,
		genres:   repository.NewGenreRepo(db),
		halls:    repository.NewHallRepo(db),
		files:    repository.NewFileRepo(db),
		films:    repository.NewFilmRepo(db),
		sessions: repository.NewFilmSessionRepo(db),
		tickets:  repository.NewTicketRepo(db),
		users:    repository.NewUserRepo(db),
	}
	e.hallSvc = NewHallService(e.halls)
	e.filmSvc = NewFilmService(e.films, NewGenreService(e.genres))
	e.sessionSvc = NewFilmSessionService(e.sessions, e.filmSvc, e.hallSvc)
	return e
}

func (e *env) ticketService(pub EventPublisher) *TicketService {
	return NewTicketService(e.tickets, e.sessionSvc, pub, logger.Discard())
}

// catalog holds one film in one hall with one session.
type catalog struct {
	genre   *model.Genre
	hall    *model.Hall
	film    *model.Film
	session *model.FilmSession
}

func (e *env) seed(t *testing.T, start time.Time) catalog {
	ctx := context.Background()
	c := catalog{
		genre: &model.Genre{Name: "Drama"},
		hall:  &model.Hall{Name: "Red", RowCount: 2, PlaceCount: 3, Description: "small"},
	}
	require.NoError(t, e.genres.Save(ctx, c.genre))
	require.NoError(t, e.halls.Save(ctx, c.hall))
	file := &model.File{Name: "alpha.jpg", Path: "alpha.jpg"}
	require.NoError(t, e.files.Save(ctx, file))
	c.film = &model.Film{Name: "Alpha", Description: "first", Year: 2020, GenreID: c.genre.ID,
		MinimalAge: 12, DurationInMinutes: 110, FileID: file.ID}
	require.NoError(t, e.films.Save(ctx, c.film))
	c.session = &model.FilmSession{FilmID: c.film.ID, HallID: c.hall.ID, StartTime: start,
		EndTime: start.Add(2 * time.Hour), Price: 350}
	require.NoError(t, e.sessions.Save(ctx, c.session))
	return c
}
