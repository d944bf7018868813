// Package presence abstracts the real-time transport that fans room and
// user targeted events out to connected clients. The coordinator only
// produces publish requests against it; delivery is best-effort.
package presence

import (
	"context"
	"fmt"
)

type Broadcaster interface {
	// PublishToRoom delivers an event to every session subscribed to the
	// room's group channel.
	PublishToRoom(ctx context.Context, roomId int, event string, payload any) error
	// PublishToUser delivers an event to the user's personal channel,
	// regardless of which rooms they are currently viewing.
	PublishToUser(ctx context.Context, username string, event string, payload any) error
}

// Envelope is the wire format published on every channel.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func RoomChannel(roomId int) string {
	return fmt.Sprintf("room.%d", roomId)
}

func UserChannel(username string) string {
	return "user." + username
}
