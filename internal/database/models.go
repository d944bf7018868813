package database

import (
	"database/sql"
	"time"
)

type Account struct {
	Id                int
	Username          string
	DisplayName       string
	EmailAddress      string
	PasswordHash      string
	Avatar            string
	Gender            string
	Birthdate         sql.NullTime
	SubscriptionLevel int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Room struct {
	Id                int
	ExternalId        string
	Name              string
	Description       string
	CategoryId        sql.NullInt64
	OwnerId           int
	MaxUsers          int
	IsPrivate         bool
	Password          string
	IsAdult           bool
	SubscriptionLevel int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Category struct {
	Id        int
	Name      string
	ParentId  sql.NullInt64
	SortOrder int
}

type Member struct {
	RoomId     int
	UserId     int
	Role       int
	Banned     bool
	Muted      bool
	HandRaised bool
	CameraOn   bool
	MicOn      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type SubscriptionTier struct {
	Id           int
	Level        int
	Name         string
	Description  string
	MaxUsers     int
	MaxStreams   int
	AlwaysOnline bool
	PriceCents   int
}

type RoomSubscription struct {
	Id          int
	RoomId      int
	TierId      int
	TierLevel   int
	PurchaserId int
	StartsAt    time.Time
	ExpiresAt   sql.NullTime
	PaymentRef  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Message struct {
	Id         int
	RoomId     int
	SenderId   int
	Content    string
	Type       string
	Attachment string
	CreatedAt  time.Time
}

type AdminAssignment struct {
	RoomId     int
	UserId     int
	Role       int
	AssignedBy int
	CreatedAt  time.Time
}

type CreateAccountParams struct {
	Username     string
	DisplayName  string
	EmailAddress string
	PasswordHash string
	Avatar       string
	Gender       string
	Birthdate    sql.NullTime
}

type UpdateAccountParams struct {
	UserId       int
	DisplayName  string
	Avatar       string
	PasswordHash string
}

type CreateRoomParams struct {
	Name              string
	ExternalId        string
	Description       string
	CategoryId        sql.NullInt64
	OwnerId           int
	MaxUsers          int
	IsPrivate         bool
	Password          string
	IsAdult           bool
	SubscriptionLevel int
	// OwnerRole is the rank the creator's membership row is inserted with.
	OwnerRole int
	// BasicTierId identifies the tier the room's initial
	// subscription record is created against.
	BasicTierId int
}

type CreateMemberParams struct {
	RoomId int
	UserId int
	Role   int
}

type UpdateMemberStatusParams struct {
	RoomId     int
	UserId     int
	CameraOn   sql.NullBool
	MicOn      sql.NullBool
	HandRaised sql.NullBool
}

type CreateMessageParams struct {
	RoomId     int
	SenderId   int
	Content    string
	Type       string
	Attachment string
}

type UpsertAdminAssignmentParams struct {
	RoomId     int
	UserId     int
	Role       int
	AssignedBy int
}

type UpgradeSubscriptionParams struct {
	RoomId       int
	TierId       int
	TierLevel    int
	TierMaxUsers int
	PurchaserId  int
	StartsAt     time.Time
	ExpiresAt    sql.NullTime
	PaymentRef   string
}
