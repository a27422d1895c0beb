package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

const filmColumns = "id, name, description, `year`, genre_id, minimal_age, duration_in_minutes, file_id"

// FilmRepo reads and writes the films table.
type FilmRepo struct {
	db *sql.DB
}

func NewFilmRepo(db *sql.DB) *FilmRepo { return &FilmRepo{db: db} }

func scanFilm(s scanner) (*model.Film, error) {
	var f model.Film
	err := s.Scan(&f.ID, &f.Name, &f.Description, &f.Year, &f.GenreID, &f.MinimalAge, &f.DurationInMinutes, &f.FileID)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FilmRepo) list(ctx context.Context, where string, args ...any) ([]*model.Film, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+filmColumns+" FROM films "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Film
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FilmRepo) FindAll(ctx context.Context) ([]*model.Film, error) {
	return r.list(ctx, "")
}

func (r *FilmRepo) FindByGenreID(ctx context.Context, genreID uint64) ([]*model.Film, error) {
	return r.list(ctx, "WHERE genre_id = ?", genreID)
}

// FindByID returns ErrNotFound for an unknown id.
func (r *FilmRepo) FindByID(ctx context.Context, id uint64) (*model.Film, error) {
	f, err := scanFilm(r.db.QueryRowContext(ctx, "SELECT "+filmColumns+" FROM films WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return f, nil
}

func (r *FilmRepo) Save(ctx context.Context, f *model.Film) error {
	const q = "INSERT INTO films (name, description, `year`, genre_id, minimal_age, duration_in_minutes, file_id) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, f.Name, f.Description, f.Year, f.GenreID, f.MinimalAge, f.DurationInMinutes, f.FileID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

func (r *FilmRepo) Update(ctx context.Context, f *model.Film) (bool, error) {
	const q = "UPDATE films SET name = ?, description = ?, `year` = ?, genre_id = ?, minimal_age = ?, " +
		"duration_in_minutes = ?, file_id = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, f.Name, f.Description, f.Year, f.GenreID, f.MinimalAge, f.DurationInMinutes, f.FileID, f.ID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *FilmRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM films WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
