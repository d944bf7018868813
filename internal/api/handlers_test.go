package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/database"
	"github.com/parleychat/parley/internal/presence"
	"github.com/parleychat/parley/internal/rooms"
	"github.com/parleychat/parley/internal/stats"
	"github.com/parleychat/parley/internal/testutil"
	"github.com/parleychat/parley/internal/types"
)

func newTestApp(t *testing.T, repo *database.MockParleyRepository) *ParleyApp {
	t.Helper()

	su := &stats.MockStatsUpdater{}
	su.On("RegisterMetric", mock.Anything).Return()
	su.On("Incr", mock.Anything).Return()
	su.On("Decr", mock.Anything).Return()

	gate := rooms.NewAccessGate(testutil.TestLogger(t), repo, true)
	coordinator := rooms.NewCoordinator(testutil.TestLogger(t), repo, gate, &presence.MockBroadcaster{}, su)

	cfg := &config.Config{
		ServerAddr: "localhost:0",
		SigningKey: []byte("test-signing-key"),
	}

	return NewParleyApp(http.NewServeMux(), testutil.TestLogger(t), coordinator, nil, repo, su, cfg)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("encode request body: %v", err)
	}
	return buf
}

func authedRequest(method, target string, body *bytes.Buffer, userId int) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(WithUserId(req.Context(), userId))
}

func Test_createAccount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("CreateAccount", mock.MatchedBy(func(p database.CreateAccountParams) bool {
			return p.Username == "kim" &&
				p.EmailAddress == "kim@example.com" &&
				p.PasswordHash != "" &&
				p.Birthdate.Valid
		})).Return(database.Account{Id: 1, Username: "kim", EmailAddress: "kim@example.com"}, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, RegisterRequest{
			Email:     "kim@example.com",
			Username:  "kim",
			Password:  "s3cret",
			Birthdate: "2000-06-15",
		}))

		app.createAccount(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var u types.User
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&u), "expected a user response")
		assert.Equal(t, "kim", u.Username, "expected the created username")
	})

	t.Run("missing fields", func(t *testing.T) {
		app := newTestApp(t, &database.MockParleyRepository{})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, RegisterRequest{
			Email: "kim@example.com",
		}))

		app.createAccount(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed birthdate", func(t *testing.T) {
		app := newTestApp(t, &database.MockParleyRepository{})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, RegisterRequest{
			Email:     "kim@example.com",
			Username:  "kim",
			Password:  "s3cret",
			Birthdate: "June 15th",
		}))

		app.createAccount(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func Test_login(t *testing.T) {
	hash, err := hashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	t.Run("success sets the session cookie", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetAccountByEmail", "kim@example.com").Return(database.Account{
			Id:           1,
			Username:     "kim",
			EmailAddress: "kim@example.com",
			PasswordHash: hash,
		}, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, LoginRequest{
			Email:    "kim@example.com",
			Password: "s3cret",
		}))

		app.login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		cookies := rr.Result().Cookies()
		var found bool
		for _, c := range cookies {
			if c.Name == tokenCookieKey && c.Value != "" {
				found = true
			}
		}
		assert.True(t, found, "expected a session token cookie")
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetAccountByEmail", "kim@example.com").Return(database.Account{
			Id:           1,
			PasswordHash: hash,
		}, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, LoginRequest{
			Email:    "kim@example.com",
			Password: "wrong",
		}))

		app.login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetAccountByEmail", "ghost@example.com").Return(database.Account{}, sql.ErrNoRows)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, LoginRequest{
			Email:    "ghost@example.com",
			Password: "s3cret",
		}))

		app.login(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func Test_createRoom(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetAccountById", 1).Return(database.Account{Id: 1, SubscriptionLevel: 1}, nil)
		repo.On("CountRoomsByOwner", 1).Return(0, nil)
		repo.On("GetTierByLevel", 0).Return(database.SubscriptionTier{Id: 1, Level: 0, MaxUsers: 20}, nil)
		repo.On("CreateRoom", mock.Anything).Return(database.Room{Id: 7, Name: "lobby", OwnerId: 1, MaxUsers: 20, IsActive: true}, nil)
		repo.On("GetMember", 7, 1).Return(database.Member{RoomId: 7, UserId: 1, Role: 1}, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/rooms", jsonBody(t, CreateRoomRequest{Name: "lobby"}), 1)

		app.createRoom(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var room types.Room
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&room), "expected a room response")
		assert.Equal(t, "lobby", room.Name, "expected the created room name")
	})

	t.Run("quota exceeded maps to conflict", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetAccountById", 1).Return(database.Account{Id: 1, SubscriptionLevel: 0}, nil)
		repo.On("CountRoomsByOwner", 1).Return(1, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/rooms", jsonBody(t, CreateRoomRequest{Name: "second"}), 1)

		app.createRoom(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		app := newTestApp(t, &database.MockParleyRepository{})
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/rooms", jsonBody(t, CreateRoomRequest{}), 1)

		app.createRoom(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func Test_joinRoom(t *testing.T) {
	t.Run("denial is a 200 with a reason", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetRoom", 7).Return(database.Room{Id: 7, OwnerId: 1, MaxUsers: 2, IsActive: true}, nil)
		repo.On("GetAccountById", 2).Return(database.Account{Id: 2, Username: "kim"}, nil)
		repo.On("GetMember", 7, 2).Return(database.Member{}, sql.ErrNoRows)
		repo.On("CountMembers", 7).Return(2, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/rooms/join", jsonBody(t, JoinRoomRequest{RoomId: 7}), 2)

		app.joinRoom(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res rooms.JoinResult
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res), "expected a join result")
		assert.False(t, res.Joined, "expected entry to be denied")
		assert.Equal(t, rooms.JoinReasonRoomFull, res.Reason, "expected the capacity reason")
	})

	t.Run("unknown room maps to 404", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetRoom", 7).Return(database.Room{}, sql.ErrNoRows)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/rooms/join", jsonBody(t, JoinRoomRequest{RoomId: 7}), 2)

		app.joinRoom(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func Test_deleteRoom(t *testing.T) {
	t.Run("non-owner maps to forbidden", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetRoom", 7).Return(database.Room{Id: 7, OwnerId: 1}, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodDelete, "/api/rooms?room_id=7", nil, 2)

		app.deleteRoom(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetRoom", 7).Return(database.Room{Id: 7, OwnerId: 1}, nil)
		repo.On("DeleteRoom", 7).Return(nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodDelete, "/api/rooms?room_id=7", nil, 1)

		app.deleteRoom(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func Test_assignRole(t *testing.T) {
	t.Run("bad role name maps to 400", func(t *testing.T) {
		app := newTestApp(t, &database.MockParleyRepository{})
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/rooms/roles", jsonBody(t, AssignRoleRequest{
			RoomId: 7,
			UserId: 2,
			Role:   "Janitor",
		}), 1)

		app.assignRole(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("success", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetRoom", 7).Return(database.Room{Id: 7, Name: "lobby", OwnerId: 1, IsActive: true}, nil)
		repo.On("GetMember", 7, 1).Return(database.Member{RoomId: 7, UserId: 1, Role: 1}, nil)
		repo.On("FriendshipExists", 1, 2).Return(true, nil)
		repo.On("GetMember", 7, 2).Return(database.Member{RoomId: 7, UserId: 2, Role: 6}, nil)
		repo.On("UpsertAdminAssignment", mock.Anything).Return(database.AdminAssignment{}, nil)
		repo.On("GetAccountById", 2).Return(database.Account{Id: 2, Username: "kim"}, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/rooms/roles", jsonBody(t, AssignRoleRequest{
			RoomId: 7,
			UserId: 2,
			Role:   "Moderator",
		}), 1)

		app.assignRole(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func Test_upgradeSubscription(t *testing.T) {
	repo := &database.MockParleyRepository{}
	repo.On("GetRoom", 7).Return(database.Room{Id: 7, OwnerId: 1, SubscriptionLevel: 0, IsActive: true}, nil).Once()
	repo.On("GetTierByLevel", 2).Return(database.SubscriptionTier{Id: 3, Level: 2, MaxUsers: 100}, nil)
	repo.On("UpgradeRoomSubscription", mock.Anything).Return(nil)
	repo.On("GetRoom", 7).Return(database.Room{Id: 7, OwnerId: 1, SubscriptionLevel: 2, IsActive: true}, nil)

	app := newTestApp(t, repo)
	rr := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/rooms/subscription", jsonBody(t, UpgradeSubscriptionRequest{
		RoomId:     7,
		Level:      2,
		PaymentRef: "pay-1",
	}), 1)

	app.upgradeSubscription(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var room types.Room
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&room), "expected a room response")
	assert.Equal(t, 2, room.SubscriptionLevel, "expected the upgraded tier on the room")
}

func Test_getMessages(t *testing.T) {
	t.Run("history is members only", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetMember", 7, 2).Return(database.Member{}, sql.ErrNoRows)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodGet, "/api/messages?room_id=7", nil, 2)

		app.getMessages(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("success resolves sender names", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetMember", 7, 2).Return(database.Member{RoomId: 7, UserId: 2, Role: 6}, nil)
		repo.On("GetMessages", 7, 0, 0).Return([]database.Message{
			{Id: 1, RoomId: 7, SenderId: 1, Content: "hello"},
			{Id: 2, RoomId: 7, SenderId: 1, Content: "again"},
		}, nil)
		repo.On("GetAccountById", 1).Return(database.Account{Id: 1, Username: "ana", DisplayName: "Ana"}, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodGet, "/api/messages?room_id=7", nil, 2)

		app.getMessages(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var msgs []types.Message
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&msgs), "expected a message list")
		assert.Len(t, msgs, 2, "expected both messages")
		assert.Equal(t, "Ana", msgs[0].Sender, "expected the display name")
		// the account is looked up once per sender
		repo.AssertNumberOfCalls(t, "GetAccountById", 1)
	})
}

func Test_listTiers(t *testing.T) {
	repo := &database.MockParleyRepository{}
	repo.On("ListTiers").Return([]database.SubscriptionTier{
		{Id: 1, Level: 0, Name: "Basic", MaxUsers: 20},
		{Id: 2, Level: 1, Name: "Silver", MaxUsers: 50},
	}, nil)

	app := newTestApp(t, repo)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tiers", nil)

	app.listTiers(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var tiers []types.Tier
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&tiers), "expected a tier list")
	assert.Len(t, tiers, 2, "expected both tiers")
	assert.Equal(t, "Basic", tiers[0].Name, "expected the basic tier first")
}

func Test_addFriend(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetAccountByUsername", "kim").Return(database.Account{Id: 2, Username: "kim"}, nil)
		repo.On("CreateFriendship", 1, 2).Return(nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/friends", jsonBody(t, AddFriendRequest{Username: "kim"}), 1)

		app.addFriend(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		repo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetAccountByUsername", "ghost").Return(database.Account{}, sql.ErrNoRows)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/friends", jsonBody(t, AddFriendRequest{Username: "ghost"}), 1)

		app.addFriend(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("cannot befriend yourself", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetAccountByUsername", "ana").Return(database.Account{Id: 1, Username: "ana"}, nil)

		app := newTestApp(t, repo)
		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/friends", jsonBody(t, AddFriendRequest{Username: "ana"}), 1)

		app.addFriend(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
