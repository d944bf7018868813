package database

import (
	"github.com/stretchr/testify/mock"
)

type MockParleyRepository struct {
	mock.Mock
}

func (m *MockParleyRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockParleyRepository) CreateAccount(params CreateAccountParams) (Account, error) {
	args := m.Called(params)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockParleyRepository) UpdateAccount(params UpdateAccountParams) (Account, error) {
	args := m.Called(params)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockParleyRepository) GetAccountById(accountId int) (Account, error) {
	args := m.Called(accountId)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockParleyRepository) GetAccountByEmail(email string) (Account, error) {
	args := m.Called(email)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockParleyRepository) GetAccountByUsername(username string) (Account, error) {
	args := m.Called(username)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockParleyRepository) CreateFriendship(userId, friendId int) error {
	args := m.Called(userId, friendId)
	return args.Error(0)
}
func (m *MockParleyRepository) FriendshipExists(userId, friendId int) (bool, error) {
	args := m.Called(userId, friendId)
	return args.Bool(0), args.Error(1)
}
func (m *MockParleyRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	args := m.Called(params)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockParleyRepository) GetRoom(roomId int) (Room, error) {
	args := m.Called(roomId)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockParleyRepository) GetRoomByExternalId(externalId string) (Room, error) {
	args := m.Called(externalId)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockParleyRepository) ListActiveRooms() ([]Room, error) {
	args := m.Called()
	return args.Get(0).([]Room), args.Error(1)
}
func (m *MockParleyRepository) CountRoomsByOwner(ownerId int) (int, error) {
	args := m.Called(ownerId)
	return args.Int(0), args.Error(1)
}
func (m *MockParleyRepository) SetRoomActive(roomId int, active bool) error {
	args := m.Called(roomId, active)
	return args.Error(0)
}
func (m *MockParleyRepository) DeleteRoom(roomId int) error {
	args := m.Called(roomId)
	return args.Error(0)
}
func (m *MockParleyRepository) ListCategories() ([]Category, error) {
	args := m.Called()
	return args.Get(0).([]Category), args.Error(1)
}
func (m *MockParleyRepository) CreateMember(params CreateMemberParams) (Member, error) {
	args := m.Called(params)
	return args.Get(0).(Member), args.Error(1)
}
func (m *MockParleyRepository) GetMember(roomId, userId int) (Member, error) {
	args := m.Called(roomId, userId)
	return args.Get(0).(Member), args.Error(1)
}
func (m *MockParleyRepository) ListMembers(roomId int) ([]Member, error) {
	args := m.Called(roomId)
	return args.Get(0).([]Member), args.Error(1)
}
func (m *MockParleyRepository) CountMembers(roomId int) (int, error) {
	args := m.Called(roomId)
	return args.Int(0), args.Error(1)
}
func (m *MockParleyRepository) UpdateMemberRole(roomId, userId, role int) error {
	args := m.Called(roomId, userId, role)
	return args.Error(0)
}
func (m *MockParleyRepository) UpdateMemberStatus(params UpdateMemberStatusParams) (int64, error) {
	args := m.Called(params)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockParleyRepository) DeleteMember(roomId, userId int) error {
	args := m.Called(roomId, userId)
	return args.Error(0)
}
func (m *MockParleyRepository) GetTierByLevel(level int) (SubscriptionTier, error) {
	args := m.Called(level)
	return args.Get(0).(SubscriptionTier), args.Error(1)
}
func (m *MockParleyRepository) ListTiers() ([]SubscriptionTier, error) {
	args := m.Called()
	return args.Get(0).([]SubscriptionTier), args.Error(1)
}
func (m *MockParleyRepository) GetRoomSubscription(roomId int) (RoomSubscription, error) {
	args := m.Called(roomId)
	return args.Get(0).(RoomSubscription), args.Error(1)
}
func (m *MockParleyRepository) UpgradeRoomSubscription(params UpgradeSubscriptionParams) error {
	args := m.Called(params)
	return args.Error(0)
}
func (m *MockParleyRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockParleyRepository) GetMessages(roomId, before, limit int) ([]Message, error) {
	args := m.Called(roomId, before, limit)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockParleyRepository) GetAdminAssignment(roomId, userId int) (AdminAssignment, error) {
	args := m.Called(roomId, userId)
	return args.Get(0).(AdminAssignment), args.Error(1)
}
func (m *MockParleyRepository) ListAdminAssignments(roomId int) ([]AdminAssignment, error) {
	args := m.Called(roomId)
	return args.Get(0).([]AdminAssignment), args.Error(1)
}
func (m *MockParleyRepository) UpsertAdminAssignment(params UpsertAdminAssignmentParams) (AdminAssignment, error) {
	args := m.Called(params)
	return args.Get(0).(AdminAssignment), args.Error(1)
}
func (m *MockParleyRepository) DeleteAdminAssignment(roomId, userId int) error {
	args := m.Called(roomId, userId)
	return args.Error(0)
}
