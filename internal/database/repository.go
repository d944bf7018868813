package database

type ParleyRepository interface {
	Ping() error

	CreateAccount(params CreateAccountParams) (Account, error)
	UpdateAccount(params UpdateAccountParams) (Account, error)
	GetAccountById(accountId int) (Account, error)
	GetAccountByEmail(email string) (Account, error)
	GetAccountByUsername(username string) (Account, error)

	CreateFriendship(userId, friendId int) error
	FriendshipExists(userId, friendId int) (bool, error)

	CreateRoom(params CreateRoomParams) (Room, error)
	GetRoom(roomId int) (Room, error)
	GetRoomByExternalId(externalId string) (Room, error)
	ListActiveRooms() ([]Room, error)
	CountRoomsByOwner(ownerId int) (int, error)
	SetRoomActive(roomId int, active bool) error
	DeleteRoom(roomId int) error

	ListCategories() ([]Category, error)

	CreateMember(params CreateMemberParams) (Member, error)
	GetMember(roomId, userId int) (Member, error)
	ListMembers(roomId int) ([]Member, error)
	CountMembers(roomId int) (int, error)
	UpdateMemberRole(roomId, userId, role int) error
	UpdateMemberStatus(params UpdateMemberStatusParams) (int64, error)
	DeleteMember(roomId, userId int) error

	GetTierByLevel(level int) (SubscriptionTier, error)
	ListTiers() ([]SubscriptionTier, error)
	GetRoomSubscription(roomId int) (RoomSubscription, error)
	UpgradeRoomSubscription(params UpgradeSubscriptionParams) error

	CreateMessage(params CreateMessageParams) (Message, error)
	GetMessages(roomId, before, limit int) ([]Message, error)

	GetAdminAssignment(roomId, userId int) (AdminAssignment, error)
	ListAdminAssignments(roomId int) ([]AdminAssignment, error)
	UpsertAdminAssignment(params UpsertAdminAssignmentParams) (AdminAssignment, error)
	DeleteAdminAssignment(roomId, userId int) error
}
