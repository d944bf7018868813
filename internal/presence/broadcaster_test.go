package presence

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelNames(t *testing.T) {
	assert.Equal(t, "room.42", RoomChannel(42), "expected room channel to embed room id")
	assert.Equal(t, "user.alice", UserChannel("alice"), "expected user channel to embed username")
}

func TestEnvelopeMarshal(t *testing.T) {
	env := Envelope{
		Event:   "UserLeft",
		Payload: map[string]int{"user_id": 7},
	}

	data, err := json.Marshal(env)
	assert.NoError(t, err, "expected envelope to marshal")
	assert.JSONEq(t, `{"event":"UserLeft","payload":{"user_id":7}}`, string(data), "expected stable envelope format")
}
