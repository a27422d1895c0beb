package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

const ticketColumns = "id, session_id, `row_number`, place_number, user_id"

// TicketRepo persists sold seats.  The unique key on
// (session_id, row_number, place_number) is what guarantees a seat is
// sold once; IsPlaceTaken is only an early check.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

func scanTicket(s scanner) (*model.Ticket, error) {
	var t model.Ticket
	if err := s.Scan(&t.ID, &t.SessionID, &t.RowNumber, &t.PlaceNumber, &t.UserID); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) list(ctx context.Context, where string, args ...any) ([]*model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+ticketColumns+" FROM tickets "+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TicketRepo) FindByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx, "SELECT "+ticketColumns+" FROM tickets WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *TicketRepo) FindBySessionID(ctx context.Context, sessionID uint64) ([]*model.Ticket, error) {
	return r.list(ctx, "WHERE session_id = ? ORDER BY `row_number`, place_number", sessionID)
}

func (r *TicketRepo) FindByUserID(ctx context.Context, userID uint64) ([]*model.Ticket, error) {
	return r.list(ctx, "WHERE user_id = ? ORDER BY id", userID)
}

// IsPlaceTaken reports whether a ticket exists for the given seat.
func (r *TicketRepo) IsPlaceTaken(ctx context.Context, sessionID uint64, row, place uint32) (bool, error) {
	const q = "SELECT COUNT(*) FROM tickets WHERE session_id = ? AND `row_number` = ? AND place_number = ?"
	var n int
	if err := r.db.QueryRowContext(ctx, q, sessionID, row, place).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Save inserts t and sets its ID.  A concurrent sale of the same seat
// surfaces as ErrSeatTaken.
func (r *TicketRepo) Save(ctx context.Context, t *model.Ticket) error {
	const q = "INSERT INTO tickets (session_id, `row_number`, place_number, user_id) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, t.SessionID, t.RowNumber, t.PlaceNumber, t.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// CountSold returns the number of tickets sold for a session.
func (r *TicketRepo) CountSold(ctx context.Context, sessionID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tickets WHERE session_id = ?", sessionID).Scan(&n)
	return n, err
}

func (r *TicketRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tickets WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
