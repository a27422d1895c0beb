package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/queue"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishTicketPurchased(ctx context.Context, ev queue.TicketPurchasedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type MockTicketStore struct {
	mock.Mock
}

func (m *MockTicketStore) FindByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*model.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketStore) FindBySessionID(ctx context.Context, sessionID uint64) ([]*model.Ticket, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *MockTicketStore) FindByUserID(ctx context.Context, userID uint64) ([]*model.Ticket, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *MockTicketStore) IsPlaceTaken(ctx context.Context, sessionID uint64, row, place uint32) (bool, error) {
	args := m.Called(ctx, sessionID, row, place)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketStore) Save(ctx context.Context, t *model.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketStore) CountSold(ctx context.Context, sessionID uint64) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketStore) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
