package stats

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsUpdater(t *testing.T) {
	su := NewStatsUpdater(http.NewServeMux())
	su.RegisterMetric("RoomJoins")
	su.Run()
	defer su.Stop()

	su.Incr("RoomJoins")
	su.Incr("RoomJoins")
	su.Decr("RoomJoins")

	assert.Eventually(t, func() bool {
		return su.vars.Get("RoomJoins").String() == "1"
	}, time.Second, 10*time.Millisecond, "expected RoomJoins to settle at 1")
}
