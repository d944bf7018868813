package gateway

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/parleychat/parley/internal/database"
	"github.com/parleychat/parley/internal/testutil"
	"github.com/parleychat/parley/internal/types"
)

func Test_queueMessage(t *testing.T) {
	t.Run("successful queue", func(t *testing.T) {
		c := &Client{
			send: make(chan *ServerMessage, 1),
			log:  testutil.TestLogger(t),
		}

		res := c.queueMessage(&ServerMessage{})
		assert.True(t, res, "expected queueMessage to return true when channel is not full")

		select {
		case msg := <-c.send:
			assert.NotNil(t, msg, "expected a message to be sent to the client")
		default:
			t.Error("expected a message to be sent to the client, but none was sent")
		}
	})
	t.Run("channel full", func(t *testing.T) {
		c := &Client{
			send: make(chan *ServerMessage, 1),
			log:  testutil.TestLogger(t),
		}

		c.send <- &ServerMessage{}
		res := c.queueMessage(&ServerMessage{})
		assert.False(t, res, "expected queueMessage to return false when channel is full")
	})
}

func Test_serializeMessage(t *testing.T) {
	message := &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        1,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: 200,
			Data:         map[string]any{"channel": "room.7"},
		},
	}

	expected := `{"id":1,"timestamp":"` + message.Timestamp.Format(time.RFC3339Nano) +
		`","response":{"response_code":200,"data":{"channel":"room.7"}}}`

	bytes, err := serializeMessage(message)
	assert.NoError(t, err, "expected no error during serialization")
	assert.Equal(t, expected, string(bytes), "expected serialized message to match the expected format")
}

func Test_stopClient(t *testing.T) {
	c := &Client{
		stop: make(chan struct{}),
	}

	c.stopClient()
	// a second stop must not panic
	c.stopClient()

	select {
	case <-c.stop:
	default:
		t.Error("expected stop channel to be closed")
	}
}

func Test_subscribe(t *testing.T) {
	t.Run("non-members are refused", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetMember", 7, 1).Return(database.Member{}, sql.ErrNoRows)

		c := &Client{
			gateway: &Gateway{repo: repo},
			user:    types.User{Id: 1, Username: "testuser"},
			send:    make(chan *ServerMessage, 1),
			log:     testutil.TestLogger(t),
		}

		c.subscribe(&ClientMessage{
			BaseMessage: BaseMessage{Id: 1, Timestamp: Now()},
			Subscribe:   &Subscribe{RoomId: 7},
		})

		select {
		case msg := <-c.send:
			assert.NotNil(t, msg.Response, "expected response to be non-nil")
			assert.Equal(t, 1, msg.Id, "expected response id to match subscribe message id")
			assert.Equal(t, 403, msg.Response.ResponseCode, "expected response code to be 403")
		default:
			t.Error("expected a message to be sent to the client, but none was sent")
		}
	})

	t.Run("membership lookup failure", func(t *testing.T) {
		repo := &database.MockParleyRepository{}
		repo.On("GetMember", 7, 1).Return(database.Member{}, errors.New("connection refused"))

		c := &Client{
			gateway: &Gateway{repo: repo},
			user:    types.User{Id: 1, Username: "testuser"},
			send:    make(chan *ServerMessage, 1),
			log:     testutil.TestLogger(t),
		}

		c.subscribe(&ClientMessage{
			BaseMessage: BaseMessage{Id: 1, Timestamp: Now()},
			Subscribe:   &Subscribe{RoomId: 7},
		})

		select {
		case msg := <-c.send:
			assert.NotNil(t, msg.Response, "expected response to be non-nil")
			assert.Equal(t, 500, msg.Response.ResponseCode, "expected response code to be 500")
		default:
			t.Error("expected a message to be sent to the client, but none was sent")
		}
	})
}

func TestMessageConstructors(t *testing.T) {
	tcases := []struct {
		name string
		msg  *ServerMessage
		code int
	}{
		{name: "ok", msg: NoErrOK(1, nil), code: 200},
		{name: "not a member", msg: ErrNotAMember(1), code: 403},
		{name: "internal error", msg: ErrInternalError(1), code: 500},
		{name: "service unavailable", msg: ErrServiceUnavailable(1), code: 503},
		{name: "invalid message", msg: ErrInvalidMessage(1), code: 400},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 1, tc.msg.Id, "expected the message id to carry through")
			assert.Equal(t, tc.code, tc.msg.Response.ResponseCode, "expected response code to match")
			assert.False(t, tc.msg.Timestamp.IsZero(), "expected a timestamp")
		})
	}
}
