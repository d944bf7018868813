package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisBroadcaster struct {
	log *log.Logger
	rdb *redis.Client
}

// NewRedisClient builds the shared client used by both the broadcaster
// and the websocket gateway's subscriptions.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func NewRedisBroadcaster(logger *log.Logger, rdb *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{
		log: logger,
		rdb: rdb,
	}
}

func (b *RedisBroadcaster) publish(ctx context.Context, channel, event string, payload any) error {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", event, err)
	}

	if err := b.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event, channel, err)
	}

	return nil
}

func (b *RedisBroadcaster) PublishToRoom(ctx context.Context, roomId int, event string, payload any) error {
	return b.publish(ctx, RoomChannel(roomId), event, payload)
}

func (b *RedisBroadcaster) PublishToUser(ctx context.Context, username string, event string, payload any) error {
	return b.publish(ctx, UserChannel(username), event, payload)
}
