package presence

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) PublishToRoom(ctx context.Context, roomId int, event string, payload any) error {
	args := m.Called(ctx, roomId, event, payload)
	return args.Error(0)
}

func (m *MockBroadcaster) PublishToUser(ctx context.Context, username string, event string, payload any) error {
	args := m.Called(ctx, username, event, payload)
	return args.Error(0)
}
