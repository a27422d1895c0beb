package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// FilmService maps films to FilmDto, resolving the genre name.
type FilmService struct {
	films  FilmStore
	genres *GenreService
}

func NewFilmService(films FilmStore, genres *GenreService) *FilmService {
	return &FilmService{films: films, genres: genres}
}

func (s *FilmService) FindAll(ctx context.Context) ([]model.FilmDto, error) {
	films, err := s.films.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.FilmDto, 0, len(films))
	for _, f := range films {
		dto, err := s.toDto(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *FilmService) FindByID(ctx context.Context, id uint64) (*model.FilmDto, error) {
	f, err := s.films.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto, err := s.toDto(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *FilmService) toDto(ctx context.Context, f *model.Film) (model.FilmDto, error) {
	genre := UnknownGenre
	g, err := s.genres.FindByID(ctx, f.GenreID)
	switch {
	case err == nil:
		genre = g.Name
	case !errors.Is(err, ErrNotFound):
		return model.FilmDto{}, err
	}
	return model.FilmDto{
		ID:                f.ID,
		Name:              f.Name,
		Description:       f.Description,
		Year:              f.Year,
		MinimalAge:        f.MinimalAge,
		DurationInMinutes: f.DurationInMinutes,
		Genre:             genre,
		PosterPath:        PosterPath(f.FileID),
	}, nil
}

// PosterPath is the URL the poster of a film is served under.
func PosterPath(fileID uint64) string {
	return fmt.Sprintf("/files/%d", fileID)
}
