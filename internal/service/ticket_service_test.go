package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/queue"
)

var start = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func TestBuyTicketSecondBuyerRejected(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.seed(t, start)
	require.Equal(t, uint64(1), c.session.ID)

	pub := new(MockPublisher)
	pub.On("PublishTicketPurchased", mock.Anything, mock.MatchedBy(func(ev queue.TicketPurchasedEvent) bool {
		return ev.SessionID == 1 && ev.UserID == 7 && ev.RowNumber == 5 && ev.PlaceNumber == 10 &&
			ev.FilmName == "Alpha" && ev.HallName == "Red" && ev.Price == 350 &&
			ev.StartsAt == "2025-03-10T18:00:00Z"
	})).Return(nil).Once()
	svc := e.ticketService(pub)

	sold, err := svc.BuyTicket(ctx, model.Ticket{SessionID: 1, RowNumber: 5, PlaceNumber: 10, UserID: 7})
	require.NoError(t, err)
	assert.NotZero(t, sold.ID)
	assert.Equal(t, uint64(7), sold.UserID)

	_, err = svc.BuyTicket(ctx, model.Ticket{SessionID: 1, RowNumber: 5, PlaceNumber: 10, UserID: 8})
	assert.ErrorIs(t, err, ErrSeatUnavailable)

	n, err := svc.SoldCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	owner, err := svc.FindByID(ctx, sold.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), owner.UserID)

	pub.AssertExpectations(t)
}

func TestBuyTicketConcurrentBuyers(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.seed(t, start)
	svc := e.ticketService(nil)

	const buyers = 16
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		wins        int
		unavailable int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(user uint64) {
			defer wg.Done()
			_, err := svc.BuyTicket(ctx, model.Ticket{SessionID: c.session.ID, RowNumber: 2, PlaceNumber: 3, UserID: user})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrSeatUnavailable):
				unavailable++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(uint64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, buyers-1, unavailable)

	sold, err := e.tickets.FindBySessionID(ctx, c.session.ID)
	require.NoError(t, err)
	assert.Len(t, sold, 1)
}

func TestBuyTicketLostRaceIsUnavailable(t *testing.T) {
	ctx := context.Background()
	store := new(MockTicketStore)
	store.On("IsPlaceTaken", ctx, uint64(1), uint32(5), uint32(10)).Return(false, nil)
	store.On("Save", ctx, mock.AnythingOfType("*model.Ticket")).Return(ErrSeatTaken)
	pub := new(MockPublisher)

	svc := NewTicketService(store, nil, pub, logger.Discard())
	_, err := svc.BuyTicket(ctx, model.Ticket{SessionID: 1, RowNumber: 5, PlaceNumber: 10, UserID: 8})

	assert.ErrorIs(t, err, ErrSeatUnavailable)
	store.AssertExpectations(t)
	pub.AssertNotCalled(t, "PublishTicketPurchased", mock.Anything, mock.Anything)
}

func TestBuyTicketTakenSkipsWrite(t *testing.T) {
	ctx := context.Background()
	store := new(MockTicketStore)
	store.On("IsPlaceTaken", ctx, uint64(1), uint32(1), uint32(1)).Return(true, nil)

	svc := NewTicketService(store, nil, nil, nil)
	_, err := svc.BuyTicket(ctx, model.Ticket{SessionID: 1, RowNumber: 1, PlaceNumber: 1, UserID: 2})

	assert.ErrorIs(t, err, ErrSeatUnavailable)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBuyTicketStorageErrorPropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	store := new(MockTicketStore)
	store.On("IsPlaceTaken", ctx, uint64(1), uint32(1), uint32(1)).Return(false, nil)
	store.On("Save", ctx, mock.AnythingOfType("*model.Ticket")).Return(boom)

	svc := NewTicketService(store, nil, nil, nil)
	_, err := svc.BuyTicket(ctx, model.Ticket{SessionID: 1, RowNumber: 1, PlaceNumber: 1, UserID: 2})

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrSeatUnavailable)
}

func TestBuyTicketPublishFailureIgnored(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.seed(t, start)

	pub := new(MockPublisher)
	pub.On("PublishTicketPurchased", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	svc := e.ticketService(pub)

	sold, err := svc.BuyTicket(ctx, model.Ticket{SessionID: c.session.ID, RowNumber: 1, PlaceNumber: 1, UserID: 3})
	require.NoError(t, err)
	assert.NotZero(t, sold.ID)
	pub.AssertExpectations(t)
}

func TestAvailablePlaces(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.seed(t, start)
	svc := e.ticketService(nil)

	free, err := svc.AvailablePlaces(ctx, c.session.ID)
	require.NoError(t, err)
	assert.Len(t, free, 6)

	_, err = svc.BuyTicket(ctx, model.Ticket{SessionID: c.session.ID, RowNumber: 1, PlaceNumber: 2, UserID: 1})
	require.NoError(t, err)

	free, err = svc.AvailablePlaces(ctx, c.session.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Place{
		{Row: 1, Place: 1}, {Row: 1, Place: 3},
		{Row: 2, Place: 1}, {Row: 2, Place: 2}, {Row: 2, Place: 3},
	}, free)

	_, err = svc.AvailablePlaces(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailablePlacesMissingHall(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.seed(t, start)
	_, err := e.halls.DeleteByID(ctx, c.hall.ID)
	require.NoError(t, err)

	free, err := e.ticketService(nil).AvailablePlaces(ctx, c.session.ID)
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestCancelFreesSeat(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.seed(t, start)
	svc := e.ticketService(nil)

	sold, err := svc.BuyTicket(ctx, model.Ticket{SessionID: c.session.ID, RowNumber: 2, PlaceNumber: 2, UserID: 4})
	require.NoError(t, err)

	mine, err := svc.FindByUserID(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, svc.Cancel(ctx, sold.ID))
	assert.ErrorIs(t, svc.Cancel(ctx, sold.ID), ErrNotFound)

	_, err = svc.BuyTicket(ctx, model.Ticket{SessionID: c.session.ID, RowNumber: 2, PlaceNumber: 2, UserID: 5})
	assert.NoError(t, err)
}
