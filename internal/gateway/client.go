package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/parleychat/parley/internal/presence"
	"github.com/parleychat/parley/internal/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 1024
)

type Client struct {
	conn     *websocket.Conn
	gateway  *Gateway
	log      *log.Logger
	user     types.User
	send     chan *ServerMessage
	pubsub   *redis.PubSub
	stop     chan struct{}
	stopOnce sync.Once
}

func NewClient(user types.User, conn *websocket.Conn, g *Gateway, l *log.Logger) *Client {
	// every connection starts subscribed to the user's personal channel
	// so role notices arrive regardless of which rooms are open
	pubsub := g.rdb.Subscribe(context.Background(), presence.UserChannel(user.Username))

	return &Client{
		conn:    conn,
		gateway: g,
		log:     l,
		user:    user,
		send:    make(chan *ServerMessage, 256),
		pubsub:  pubsub,
		stop:    make(chan struct{}),
	}
}

// Start registers the client and launches its pumps. It returns
// immediately; the pumps run until the connection drops.
func (c *Client) Start() {
	c.gateway.RegisterChan <- c
	go c.relay()
	go c.Write()
	go c.Read()
}

func (c *Client) Write() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.log.Println("write exiting")
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			bytes, err := serializeMessage(msg)
			if err != nil {
				c.log.Println("failed to serialize message:", err)
				continue
			}

			if !c.sendMessage(websocket.TextMessage, bytes) {
				return
			}
		case <-c.stop:
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !c.sendMessage(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

func (c *Client) Read() {
	defer func() {
		c.conn.Close()
		c.cleanup()
		c.log.Println("read exiting")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(appData string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.log.Printf("ws: read: %v", err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Println("error parsing message:", err)
			c.queueMessage(ErrInvalidMessage(-1))
			continue
		}

		msg.client = c

		switch {
		case msg.Subscribe != nil:
			c.subscribe(&msg)
		case msg.Unsubscribe != nil:
			c.unsubscribe(&msg)
		default:
			c.queueMessage(ErrInvalidMessage(msg.Id))
		}
	}
}

// relay forwards broker envelopes to the send pump. It exits when the
// pubsub connection is closed during cleanup.
func (c *Client) relay() {
	for m := range c.pubsub.Channel() {
		var env struct {
			Event   string          `json:"event"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
			c.log.Printf("bad envelope on %s: %v", m.Channel, err)
			continue
		}

		c.queueMessage(&ServerMessage{
			BaseMessage: BaseMessage{Timestamp: Now()},
			Event: &Event{
				Name:    env.Event,
				Channel: m.Channel,
				Payload: env.Payload,
			},
		})
	}
}

// subscribe attaches the client to a room channel after verifying the
// membership row exists. Membership is granted over the HTTP API; the
// gateway only ever reads it.
func (c *Client) subscribe(msg *ClientMessage) {
	_, err := c.gateway.repo.GetMember(msg.Subscribe.RoomId, c.user.Id)
	if errors.Is(err, sql.ErrNoRows) {
		c.queueMessage(ErrNotAMember(msg.Id))
		return
	}
	if err != nil {
		c.log.Printf("load membership: %v", err)
		c.queueMessage(ErrInternalError(msg.Id))
		return
	}

	channel := presence.RoomChannel(msg.Subscribe.RoomId)
	if err := c.pubsub.Subscribe(context.Background(), channel); err != nil {
		c.log.Printf("subscribe %s: %v", channel, err)
		c.queueMessage(ErrServiceUnavailable(msg.Id))
		return
	}

	c.queueMessage(NoErrOK(msg.Id, map[string]any{"channel": channel}))
}

func (c *Client) unsubscribe(msg *ClientMessage) {
	channel := presence.RoomChannel(msg.Unsubscribe.RoomId)
	if err := c.pubsub.Unsubscribe(context.Background(), channel); err != nil {
		c.log.Printf("unsubscribe %s: %v", channel, err)
		c.queueMessage(ErrServiceUnavailable(msg.Id))
		return
	}

	c.queueMessage(NoErrOK(msg.Id, map[string]any{"channel": channel}))
}

func (c *Client) queueMessage(msg *ServerMessage) bool {
	select {
	case c.send <- msg:
	default:
		c.log.Println("failed to send message to client, channel is full")
		return false
	}

	return true
}

func serializeMessage(msg *ServerMessage) ([]byte, error) {
	return json.Marshal(msg)
}

func (c *Client) sendMessage(msgType int, msg []byte) bool {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(msgType, msg); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			websocket.CloseNormalClosure) {
			c.log.Printf("write message: %s", err)
		}
		return false
	}

	return true
}

func (c *Client) stopClient() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Client) cleanup() {
	c.pubsub.Close()
	c.gateway.deRegisterChan <- c
	c.stopClient()
}
