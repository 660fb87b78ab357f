package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
)

// MockSessionEventPublisher is a mock implementation of service.SessionEventPublisher
type MockSessionEventPublisher struct {
	mock.Mock
}

func NewMockSessionEventPublisher(t *testing.T) *MockSessionEventPublisher {
	m := &MockSessionEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionEventPublisher) Publish(ctx context.Context, event service.SessionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
