package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

const sessionColumns = "id, film_id, hall_id, start_time, end_time, price"

// FilmSessionRepo reads and writes screenings.  Time filters take their
// bounds from the caller so the same queries run on any SQL dialect.
type FilmSessionRepo struct {
	db *sql.DB
}

func NewFilmSessionRepo(db *sql.DB) *FilmSessionRepo { return &FilmSessionRepo{db: db} }

func scanSession(s scanner) (*model.FilmSession, error) {
	var fs model.FilmSession
	if err := s.Scan(&fs.ID, &fs.FilmID, &fs.HallID, &fs.StartTime, &fs.EndTime, &fs.Price); err != nil {
		return nil, err
	}
	fs.StartTime = fs.StartTime.UTC()
	fs.EndTime = fs.EndTime.UTC()
	return &fs, nil
}

func (r *FilmSessionRepo) list(ctx context.Context, where string, args ...any) ([]*model.FilmSession, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+sessionColumns+" FROM film_sessions "+where+" ORDER BY start_time, id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.FilmSession
	for rows.Next() {
		fs, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fs)
	}
	return out, rows.Err()
}

// FindAll returns every session ordered by start time.
func (r *FilmSessionRepo) FindAll(ctx context.Context) ([]*model.FilmSession, error) {
	return r.list(ctx, "")
}

func (r *FilmSessionRepo) FindByFilmID(ctx context.Context, filmID uint64) ([]*model.FilmSession, error) {
	return r.list(ctx, "WHERE film_id = ?", filmID)
}

func (r *FilmSessionRepo) FindByHallID(ctx context.Context, hallID uint64) ([]*model.FilmSession, error) {
	return r.list(ctx, "WHERE hall_id = ?", hallID)
}

// FindByTimeRange returns sessions whose start lies in [from, to].
func (r *FilmSessionRepo) FindByTimeRange(ctx context.Context, from, to time.Time) ([]*model.FilmSession, error) {
	return r.list(ctx, "WHERE start_time BETWEEN ? AND ?", from.UTC(), to.UTC())
}

// FindUpcomingByFilmID returns the film's sessions starting at or after now.
func (r *FilmSessionRepo) FindUpcomingByFilmID(ctx context.Context, filmID uint64, now time.Time) ([]*model.FilmSession, error) {
	return r.list(ctx, "WHERE film_id = ? AND start_time >= ?", filmID, now.UTC())
}

// FindOnDay returns sessions starting on the calendar day of day, in
// day's location.
func (r *FilmSessionRepo) FindOnDay(ctx context.Context, day time.Time) ([]*model.FilmSession, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	return r.list(ctx, "WHERE start_time >= ? AND start_time < ?", start.UTC(), end.UTC())
}

func (r *FilmSessionRepo) FindByID(ctx context.Context, id uint64) (*model.FilmSession, error) {
	fs, err := scanSession(r.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM film_sessions WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return fs, nil
}

func (r *FilmSessionRepo) Save(ctx context.Context, fs *model.FilmSession) error {
	const q = `INSERT INTO film_sessions (film_id, hall_id, start_time, end_time, price) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, fs.FilmID, fs.HallID, fs.StartTime.UTC(), fs.EndTime.UTC(), fs.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	fs.ID = uint64(id)
	return nil
}

func (r *FilmSessionRepo) Update(ctx context.Context, fs *model.FilmSession) (bool, error) {
	const q = `UPDATE film_sessions SET film_id = ?, hall_id = ?, start_time = ?, end_time = ?, price = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, fs.FilmID, fs.HallID, fs.StartTime.UTC(), fs.EndTime.UTC(), fs.Price, fs.ID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *FilmSessionRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM film_sessions WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
