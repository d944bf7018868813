// Package gateway owns the websocket side of event delivery. Clients
// connect here, subscribe to room channels they are members of, and
// receive the events the coordinator publishes through the broker.
package gateway

import (
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/parleychat/parley/internal/database"
	"github.com/parleychat/parley/internal/stats"
)

type Gateway struct {
	log            *log.Logger
	repo           database.ParleyRepository
	rdb            *redis.Client
	stats          stats.StatsProvider
	clients        map[*Client]struct{}
	clientsLock    sync.Mutex
	RegisterChan   chan *Client
	deRegisterChan chan *Client
	stop           chan struct{}
	done           chan struct{}
}

func NewGateway(logger *log.Logger, repo database.ParleyRepository, rdb *redis.Client, sp stats.StatsProvider) *Gateway {
	sp.RegisterMetric("ConnectedClients")

	return &Gateway{
		log:            logger,
		repo:           repo,
		rdb:            rdb,
		stats:          sp,
		clients:        make(map[*Client]struct{}),
		RegisterChan:   make(chan *Client),
		deRegisterChan: make(chan *Client),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (g *Gateway) Run() {
	for {
		select {
		case client := <-g.RegisterChan:
			g.log.Printf("adding connection from %q", client.user.Username)
			g.addClient(client)
			g.stats.Incr("ConnectedClients")
		case client := <-g.deRegisterChan:
			g.log.Printf("removing connection from %q", client.user.Username)
			g.removeClient(client)
			g.stats.Decr("ConnectedClients")
		case <-g.stop:
			g.log.Println("stopping connected clients")
			g.clientsLock.Lock()
			for client := range g.clients {
				client.stopClient()
			}
			g.clientsLock.Unlock()

			close(g.done)
			return
		}
	}
}

func (g *Gateway) addClient(c *Client) {
	g.clientsLock.Lock()
	defer g.clientsLock.Unlock()
	g.clients[c] = struct{}{}
}

func (g *Gateway) removeClient(c *Client) {
	g.clientsLock.Lock()
	defer g.clientsLock.Unlock()
	delete(g.clients, c)
}

func (g *Gateway) Shutdown() {
	g.log.Println("received shutdown signal")
	close(g.stop)
	<-g.done
}
