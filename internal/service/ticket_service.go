package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/queue"
)

// EventPublisher receives a notification for every sold ticket.
type EventPublisher interface {
	PublishTicketPurchased(ctx context.Context, ev queue.TicketPurchasedEvent) error
}

// TicketService sells seats.  There are no in-process locks: the early
// availability check keeps the common case cheap and the storage unique
// key decides every race.
type TicketService struct {
	tickets   TicketStore
	sessions  *FilmSessionService
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewTicketService wires the purchase path.  publisher may be nil.
func NewTicketService(tickets TicketStore, sessions *FilmSessionService, publisher EventPublisher, log *logger.Logger) *TicketService {
	if log == nil {
		log = logger.Discard()
	}
	return &TicketService{tickets: tickets, sessions: sessions, publisher: publisher, log: log, now: time.Now}
}

// BuyTicket sells the seat named by t to t.UserID.  On success the stored
// ticket with its generated id is returned.  A seat that is already sold,
// including one sold by a concurrent request between the check and the
// insert, yields ErrSeatUnavailable and nothing is written.
func (s *TicketService) BuyTicket(ctx context.Context, t model.Ticket) (*model.Ticket, error) {
	taken, err := s.tickets.IsPlaceTaken(ctx, t.SessionID, t.RowNumber, t.PlaceNumber)
	if err != nil {
		return nil, fmt.Errorf("check place: %w", err)
	}
	if taken {
		s.log.LogBooking("REJECT", t.SessionID, t.RowNumber, t.PlaceNumber, "already sold")
		return nil, ErrSeatUnavailable
	}

	t.ID = 0
	if err := s.tickets.Save(ctx, &t); err != nil {
		if errors.Is(err, ErrSeatTaken) {
			s.log.LogBooking("REJECT", t.SessionID, t.RowNumber, t.PlaceNumber, "lost race")
			return nil, ErrSeatUnavailable
		}
		return nil, fmt.Errorf("save ticket: %w", err)
	}
	s.log.LogBooking("SOLD", t.SessionID, t.RowNumber, t.PlaceNumber, fmt.Sprintf("ticket %d user %d", t.ID, t.UserID))
	s.publish(ctx, &t)
	return &t, nil
}

// publish is best effort; the sale stands whatever happens here.
func (s *TicketService) publish(ctx context.Context, t *model.Ticket) {
	if s.publisher == nil {
		return
	}
	ev := queue.TicketPurchasedEvent{
		TicketID:    t.ID,
		SessionID:   t.SessionID,
		UserID:      t.UserID,
		RowNumber:   t.RowNumber,
		PlaceNumber: t.PlaceNumber,
		PurchasedAt: s.now().UTC().Format(time.RFC3339),
	}
	if s.sessions != nil {
		if d, err := s.sessions.FindByID(ctx, t.SessionID); err == nil {
			ev.FilmName = d.FilmName
			ev.HallName = d.HallName
			ev.StartsAt = d.StartTime.UTC().Format(time.RFC3339)
			ev.Price = d.Price
		}
	}
	if err := s.publisher.PublishTicketPurchased(ctx, ev); err != nil {
		s.log.Errorf("BOOKING", "publish ticket %d: %v", t.ID, err)
	}
}

// AvailablePlaces lists the seats of the session's hall with no ticket,
// row by row.  A session whose hall is missing has no places.
func (s *TicketService) AvailablePlaces(ctx context.Context, sessionID uint64) ([]model.Place, error) {
	detail, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sold, err := s.tickets.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	taken := make(map[model.Place]struct{}, len(sold))
	for _, t := range sold {
		taken[model.Place{Row: t.RowNumber, Place: t.PlaceNumber}] = struct{}{}
	}
	var free []model.Place
	for r := uint32(1); r <= detail.HallRowCount; r++ {
		for p := uint32(1); p <= detail.HallPlaceCount; p++ {
			pl := model.Place{Row: r, Place: p}
			if _, ok := taken[pl]; !ok {
				free = append(free, pl)
			}
		}
	}
	return free, nil
}

func (s *TicketService) SoldCount(ctx context.Context, sessionID uint64) (int, error) {
	return s.tickets.CountSold(ctx, sessionID)
}

func (s *TicketService) FindByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	return s.tickets.FindByID(ctx, id)
}

func (s *TicketService) FindByUserID(ctx context.Context, userID uint64) ([]*model.Ticket, error) {
	return s.tickets.FindByUserID(ctx, userID)
}

// Cancel deletes a ticket, freeing its seat.  Unknown ids yield
// ErrNotFound.
func (s *TicketService) Cancel(ctx context.Context, id uint64) error {
	ok, err := s.tickets.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.log.Infof("BOOKING", "ticket %d cancelled", id)
	return nil
}
