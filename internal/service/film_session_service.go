package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// FilmSessionService builds the session listing and detail views.  A
// session whose film or hall has gone missing is still shown, with
// placeholder names.
type FilmSessionService struct {
	sessions FilmSessionStore
	films    *FilmService
	halls    *HallService
	now      func() time.Time
}

func NewFilmSessionService(sessions FilmSessionStore, films *FilmService, halls *HallService) *FilmSessionService {
	return &FilmSessionService{sessions: sessions, films: films, halls: halls, now: time.Now}
}

func (s *FilmSessionService) FindAll(ctx context.Context) ([]model.FilmSessionDto, error) {
	list, err := s.sessions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toDtos(ctx, list)
}

// FindByFilmID lists every session of a film, past ones included.
func (s *FilmSessionService) FindByFilmID(ctx context.Context, filmID uint64) ([]model.FilmSessionDto, error) {
	list, err := s.sessions.FindByFilmID(ctx, filmID)
	if err != nil {
		return nil, err
	}
	return s.toDtos(ctx, list)
}

// FindUpcomingByFilmID lists the film's sessions that have not started.
func (s *FilmSessionService) FindUpcomingByFilmID(ctx context.Context, filmID uint64) ([]model.FilmSessionDto, error) {
	list, err := s.sessions.FindUpcomingByFilmID(ctx, filmID, s.now())
	if err != nil {
		return nil, err
	}
	return s.toDtos(ctx, list)
}

// FindToday lists sessions starting on the current UTC day.
func (s *FilmSessionService) FindToday(ctx context.Context) ([]model.FilmSessionDto, error) {
	list, err := s.sessions.FindOnDay(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.toDtos(ctx, list)
}

// FindByID returns the detail view of a session or ErrNotFound.
func (s *FilmSessionService) FindByID(ctx context.Context, id uint64) (*model.FilmSessionDetailDto, error) {
	fs, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	film, err := s.film(ctx, fs.FilmID)
	if err != nil {
		return nil, err
	}
	hall, err := s.hall(ctx, fs.HallID)
	if err != nil {
		return nil, err
	}
	return &model.FilmSessionDetailDto{
		ID:                    fs.ID,
		StartTime:             fs.StartTime,
		EndTime:               fs.EndTime,
		Price:                 fs.Price,
		FilmName:              film.Name,
		FilmDescription:       film.Description,
		FilmYear:              film.Year,
		FilmMinimalAge:        film.MinimalAge,
		FilmDurationInMinutes: film.DurationInMinutes,
		GenreName:             film.Genre,
		PosterPath:            film.PosterPath,
		HallName:              hall.Name,
		HallDescription:       hall.Description,
		HallRowCount:          hall.RowCount,
		HallPlaceCount:        hall.PlaceCount,
	}, nil
}

func (s *FilmSessionService) toDtos(ctx context.Context, list []*model.FilmSession) ([]model.FilmSessionDto, error) {
	out := make([]model.FilmSessionDto, 0, len(list))
	for _, fs := range list {
		film, err := s.film(ctx, fs.FilmID)
		if err != nil {
			return nil, err
		}
		hall, err := s.hall(ctx, fs.HallID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.FilmSessionDto{
			ID:              fs.ID,
			FilmID:          fs.FilmID,
			FilmName:        film.Name,
			FilmDescription: film.Description,
			PosterPath:      film.PosterPath,
			HallName:        hall.Name,
			StartTime:       fs.StartTime,
			EndTime:         fs.EndTime,
			Price:           fs.Price,
		})
	}
	return out, nil
}

// film resolves the film or substitutes the placeholder.
func (s *FilmSessionService) film(ctx context.Context, id uint64) (*model.FilmDto, error) {
	f, err := s.films.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &model.FilmDto{ID: id, Name: UnknownFilm, Genre: UnknownGenre}, nil
	}
	return f, err
}

func (s *FilmSessionService) hall(ctx context.Context, id uint64) (*model.Hall, error) {
	h, err := s.halls.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &model.Hall{ID: id, Name: UnknownHall}, nil
	}
	return h, err
}
