package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/parleychat/parley/internal/database"
	"github.com/parleychat/parley/internal/stats"
	"github.com/parleychat/parley/internal/testutil"
	"github.com/parleychat/parley/internal/types"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()

	su := &stats.MockStatsUpdater{}
	su.On("RegisterMetric", mock.Anything).Return()
	su.On("Incr", mock.Anything).Return()
	su.On("Decr", mock.Anything).Return()

	return NewGateway(testutil.TestLogger(t), &database.MockParleyRepository{}, nil, su)
}

func TestGatewayRegistration(t *testing.T) {
	g := newTestGateway(t)
	go g.Run()

	c := &Client{
		user: types.User{Id: 1, Username: "testuser"},
		stop: make(chan struct{}),
		log:  testutil.TestLogger(t),
	}

	g.RegisterChan <- c
	assert.Eventually(t, func() bool {
		g.clientsLock.Lock()
		defer g.clientsLock.Unlock()
		_, ok := g.clients[c]
		return ok
	}, time.Second, 10*time.Millisecond, "expected the client to be registered")

	g.deRegisterChan <- c
	assert.Eventually(t, func() bool {
		g.clientsLock.Lock()
		defer g.clientsLock.Unlock()
		_, ok := g.clients[c]
		return !ok
	}, time.Second, 10*time.Millisecond, "expected the client to be removed")

	g.Shutdown()
}

func TestGatewayShutdownStopsClients(t *testing.T) {
	g := newTestGateway(t)
	go g.Run()

	c := &Client{
		user: types.User{Id: 1, Username: "testuser"},
		stop: make(chan struct{}),
		log:  testutil.TestLogger(t),
	}
	g.RegisterChan <- c

	g.Shutdown()

	select {
	case <-c.stop:
	default:
		t.Error("expected the client to be stopped on shutdown")
	}
}
