package testutil

import (
	"context"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/Complexlity/paywithglide/internal/settlement"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock for settlement.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateSession(ctx context.Context, params settlement.CreateSessionParams) (*settlement.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Session), args.Error(1)
}

func (m *MockProvider) GetSession(ctx context.Context, sessionID string) (*settlement.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Session), args.Error(1)
}

func (m *MockProvider) UpdatePaymentTransaction(ctx context.Context, params settlement.UpdatePaymentParams) (*settlement.UpdatePaymentResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.UpdatePaymentResult), args.Error(1)
}

// MockLookup is a mock for the identity provider lookups
type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) SearchByHandle(ctx context.Context, query string) ([]model.UserRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserRecord), args.Error(1)
}

func (m *MockLookup) BulkByAddress(ctx context.Context, address string) ([]model.UserRecord, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserRecord), args.Error(1)
}

func (m *MockLookup) BulkByID(ctx context.Context, ids ...string) ([]model.UserRecord, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserRecord), args.Error(1)
}
