package events

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// PhotoSaved announces that a photo was attached to a movement. Listeners must not
// rely on the payload beyond "something changed".
type PhotoSaved struct {
	MovementID string `json:"movement_id"`
}

type PhotoSavedListener func(PhotoSaved)

// Publisher announces photo-saved events. The Bus delivers in process; RedisPublisher
// fans out through Redis and reaches local listeners via RedisBridge.
type Publisher interface {
	PublishPhotoSaved(ctx context.Context, e PhotoSaved) error
}

// Bus is an in-process observer for photo-saved notifications. The upload flow calls
// PublishPhotoSaved directly once a photo is stored.
type Bus struct {
	mu        sync.RWMutex
	listeners map[int]PhotoSavedListener
	nextID    int
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[int]PhotoSavedListener)}
}

// SubscribePhotoSaved registers fn and returns the function that removes it.
func (b *Bus) SubscribePhotoSaved(fn PhotoSavedListener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// PublishPhotoSaved calls every listener synchronously.
func (b *Bus) PublishPhotoSaved(_ context.Context, e PhotoSaved) error {
	b.mu.RLock()
	listeners := make([]PhotoSavedListener, 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.mu.RUnlock()

	for _, l := range listeners {
		l(e)
	}
	return nil
}

func (b *Bus) ListenerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// FallbackPublisher publishes through Primary and, when that fails, delivers to
// Fallback so local listeners still refresh.
type FallbackPublisher struct {
	Primary  Publisher
	Fallback Publisher
	logger   *zap.Logger
}

func NewFallbackPublisher(primary, fallback Publisher, logger *zap.Logger) *FallbackPublisher {
	return &FallbackPublisher{Primary: primary, Fallback: fallback, logger: logger}
}

func (p *FallbackPublisher) PublishPhotoSaved(ctx context.Context, e PhotoSaved) error {
	err := p.Primary.PublishPhotoSaved(ctx, e)
	if err == nil {
		return nil
	}

	p.logger.Warn("photo saved not broadcast, notifying local listeners only",
		zap.String("movement_id", e.MovementID), zap.Error(err))
	if ferr := p.Fallback.PublishPhotoSaved(ctx, e); ferr != nil {
		return errors.Join(err, ferr)
	}
	return nil
}
