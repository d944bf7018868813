package rooms

import (
	"github.com/parleychat/parley/internal/types"
)

// Event names published to the presence broadcaster.
const (
	EventUserJoined          = "UserJoined"
	EventUserLeft            = "UserLeft"
	EventReceiveMessage      = "ReceiveMessage"
	EventMemberStatusUpdated = "MemberStatusUpdated"
	EventRoleAssigned        = "RoleAssigned"
	EventRoleRemoved         = "RoleRemoved"
	EventRoomDeleted         = "RoomDeleted"
)

type UserJoined struct {
	Member types.Member `json:"member"`
}

type UserLeft struct {
	UserId int `json:"user_id"`
}

type ReceiveMessage struct {
	Message types.Message `json:"message"`
}

// MemberStatusUpdated carries only the flags that actually changed;
// untouched flags stay null on the wire.
type MemberStatusUpdated struct {
	UserId     int   `json:"user_id"`
	CameraOn   *bool `json:"camera_on,omitempty"`
	MicOn      *bool `json:"mic_on,omitempty"`
	HandRaised *bool `json:"hand_raised,omitempty"`
}

type RoleAssigned struct {
	RoomId   int    `json:"room_id"`
	RoomName string `json:"room_name"`
	Role     string `json:"role"`
}

type RoleRemoved struct {
	RoomId   int    `json:"room_id"`
	RoomName string `json:"room_name"`
}

type RoomDeleted struct {
	RoomId int `json:"room_id"`
}
