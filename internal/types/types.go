package types

import (
	"time"
)

type User struct {
	Id                int        `json:"id"`
	Username          string     `json:"username"`
	DisplayName       string     `json:"display_name,omitempty"`
	Avatar            string     `json:"avatar,omitempty"`
	Gender            string     `json:"gender,omitempty"`
	EmailAddress      string     `json:"email_address,omitempty"`
	Password          string     `json:"-"`
	Birthdate         *time.Time `json:"-"`
	SubscriptionLevel int        `json:"subscription_level,omitempty"`
	CreatedAt         time.Time  `json:"created_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at,omitempty"`
}

type Room struct {
	Id                int       `json:"id"`
	ExternalId        string    `json:"external_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	CategoryId        int       `json:"category_id,omitempty"`
	OwnerId           int       `json:"owner_id"`
	MaxUsers          int       `json:"max_users"`
	IsPrivate         bool      `json:"is_private"`
	IsAdult           bool      `json:"is_adult"`
	SubscriptionLevel int       `json:"subscription_level"`
	IsActive          bool      `json:"is_active"`
	Members           []Member  `json:"members,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

type Member struct {
	RoomId      int       `json:"room_id"`
	UserId      int       `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Role        string    `json:"role"`
	RoleColor   string    `json:"role_color,omitempty"`
	Banned      bool      `json:"banned,omitempty"`
	Muted       bool      `json:"muted,omitempty"`
	HandRaised  bool      `json:"hand_raised,omitempty"`
	CameraOn    bool      `json:"camera_on,omitempty"`
	MicOn       bool      `json:"mic_on,omitempty"`
	JoinedAt    time.Time `json:"joined_at,omitempty"`
}

type Message struct {
	Id         int       `json:"id"`
	RoomId     int       `json:"room_id"`
	SenderId   int       `json:"sender_id"`
	Sender     string    `json:"sender"`
	Role       string    `json:"role,omitempty"`
	RoleColor  string    `json:"role_color,omitempty"`
	Content    string    `json:"content"`
	Type       string    `json:"type,omitempty"`
	Attachment string    `json:"attachment,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type Tier struct {
	Level        int    `json:"level"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	MaxUsers     int    `json:"max_users"`
	MaxStreams   int    `json:"max_streams"`
	AlwaysOnline bool   `json:"always_online"`
	PriceCents   int    `json:"price_cents"`
}

type Category struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	ParentId  int    `json:"parent_id,omitempty"`
	SortOrder int    `json:"sort_order"`
}
