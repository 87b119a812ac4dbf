package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rogerio-castellano/container-tracker/internal/redissvc"
	"go.uber.org/zap"
)

// PhotoSavedChannel is the Redis pub/sub channel shared with out-of-process uploaders.
const PhotoSavedChannel = "photoSaved"

// RedisPublisher announces photo-saved events on the shared channel.
type RedisPublisher struct {
	rs *redissvc.RedisService
}

func NewRedisPublisher(rs *redissvc.RedisService) *RedisPublisher {
	return &RedisPublisher{rs: rs}
}

func (p *RedisPublisher) PublishPhotoSaved(ctx context.Context, e PhotoSaved) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode photo saved event: %w", err)
	}
	if err := p.rs.Rdb().Publish(ctx, PhotoSavedChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish photo saved event: %w", err)
	}
	return nil
}

// RedisBridge relays photo-saved messages from Redis into a local Bus.
type RedisBridge struct {
	rs     *redissvc.RedisService
	bus    *Bus
	logger *zap.Logger
}

func NewRedisBridge(rs *redissvc.RedisService, bus *Bus, logger *zap.Logger) *RedisBridge {
	return &RedisBridge{rs: rs, bus: bus, logger: logger}
}

// Run blocks until ctx is done.
func (b *RedisBridge) Run(ctx context.Context) error {
	pubsub := b.rs.Rdb().Subscribe(ctx, PhotoSavedChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", PhotoSavedChannel, err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var e PhotoSaved
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				// A bare signal still means something changed.
				b.logger.Debug("photo saved message without payload", zap.String("payload", msg.Payload))
			}
			_ = b.bus.PublishPhotoSaved(ctx, e)
		}
	}
}
