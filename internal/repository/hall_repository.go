package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

const hallColumns = "id, name, row_count, place_count, description"

// HallRepo provides methods to create and retrieve halls.  Halls are
// read-only for visitors; Save, Update and DeleteByID serve the seeder
// and administrative tooling.
type HallRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

func scanHall(s scanner) (*model.Hall, error) {
	var h model.Hall
	if err := s.Scan(&h.ID, &h.Name, &h.RowCount, &h.PlaceCount, &h.Description); err != nil {
		return nil, err
	}
	return &h, nil
}

// FindAll lists halls ordered by id.
func (r *HallRepo) FindAll(ctx context.Context) ([]*model.Hall, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+hallColumns+" FROM halls ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hall
	for rows.Next() {
		h, err := scanHall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// FindByID retrieves a hall by its ID.  It returns ErrNotFound when no
// row is found.
func (r *HallRepo) FindByID(ctx context.Context, id uint64) (*model.Hall, error) {
	h, err := scanHall(r.db.QueryRowContext(ctx, "SELECT "+hallColumns+" FROM halls WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return h, nil
}

// Save inserts a new hall.  After insert the ID field of the hall will be
// set.
func (r *HallRepo) Save(ctx context.Context, h *model.Hall) error {
	const q = `INSERT INTO halls (name, row_count, place_count, description) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.RowCount, h.PlaceCount, h.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// Update overwrites every column of the hall with h.ID.  It reports false
// when no such hall exists.
func (r *HallRepo) Update(ctx context.Context, h *model.Hall) (bool, error) {
	const q = `UPDATE halls SET name = ?, row_count = ?, place_count = ?, description = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.RowCount, h.PlaceCount, h.Description, h.ID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *HallRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM halls WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
