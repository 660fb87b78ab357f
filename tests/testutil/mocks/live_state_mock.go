package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// MockLiveStateRepository is a mock implementation of repository.LiveStateRepository
type MockLiveStateRepository struct {
	mock.Mock
}

func NewMockLiveStateRepository(t *testing.T) *MockLiveStateRepository {
	m := &MockLiveStateRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLiveStateRepository) Turn(ctx context.Context, sessionID string) (valueobject.TurnRole, bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(valueobject.TurnRole), args.Bool(1), args.Error(2)
}

func (m *MockLiveStateRepository) SetTurn(ctx context.Context, sessionID string, turn valueobject.TurnRole) error {
	args := m.Called(ctx, sessionID, turn)
	return args.Error(0)
}

func (m *MockLiveStateRepository) InitTurn(ctx context.Context, sessionID string, turn valueobject.TurnRole) (valueobject.TurnRole, error) {
	args := m.Called(ctx, sessionID, turn)
	return args.Get(0).(valueobject.TurnRole), args.Error(1)
}

func (m *MockLiveStateRepository) AddMatchedCards(ctx context.Context, sessionID string, cards ...string) error {
	args := m.Called(ctx, sessionID, cards)
	return args.Error(0)
}

func (m *MockLiveStateRepository) MatchedCards(ctx context.Context, sessionID string) ([]string, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
