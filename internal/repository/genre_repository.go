package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// GenreRepo reads and writes the genres table.
type GenreRepo struct {
	db *sql.DB
}

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{db: db} }

func (r *GenreRepo) FindAll(ctx context.Context) ([]*model.Genre, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM genres ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Genre
	for rows.Next() {
		g := new(model.Genre)
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// FindByID returns ErrNotFound when no genre has the given id.
func (r *GenreRepo) FindByID(ctx context.Context, id uint64) (*model.Genre, error) {
	var g model.Genre
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM genres WHERE id = ?", id).Scan(&g.ID, &g.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

// Save inserts g and sets its ID.
func (r *GenreRepo) Save(ctx context.Context, g *model.Genre) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", g.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

func (r *GenreRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM genres WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
