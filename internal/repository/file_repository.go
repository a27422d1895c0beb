package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// FileRepo maps poster file records.  Only the metadata lives in the
// database; the bytes stay on disk under Path.
type FileRepo struct {
	db *sql.DB
}

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{db: db} }

func (r *FileRepo) FindByID(ctx context.Context, id uint64) (*model.File, error) {
	var f model.File
	err := r.db.QueryRowContext(ctx, "SELECT id, name, path FROM files WHERE id = ?", id).
		Scan(&f.ID, &f.Name, &f.Path)
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

// FindByName returns the first file with the given name.
func (r *FileRepo) FindByName(ctx context.Context, name string) (*model.File, error) {
	var f model.File
	err := r.db.QueryRowContext(ctx, "SELECT id, name, path FROM files WHERE name = ? ORDER BY id LIMIT 1", name).
		Scan(&f.ID, &f.Name, &f.Path)
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *FileRepo) Save(ctx context.Context, f *model.File) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO files (name, path) VALUES (?, ?)", f.Name, f.Path)
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

func (r *FileRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
