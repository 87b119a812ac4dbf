package events

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/redissvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBus_PublishReachesEveryListener(t *testing.T) {
	bus := NewBus()

	var a, b []string
	unsubA := bus.SubscribePhotoSaved(func(e PhotoSaved) { a = append(a, e.MovementID) })
	bus.SubscribePhotoSaved(func(e PhotoSaved) { b = append(b, e.MovementID) })
	assert.Equal(t, 2, bus.ListenerCount())

	require.NoError(t, bus.PublishPhotoSaved(context.Background(), PhotoSaved{MovementID: "m1"}))
	unsubA()
	unsubA()
	require.NoError(t, bus.PublishPhotoSaved(context.Background(), PhotoSaved{MovementID: "m2"}))

	assert.Equal(t, []string{"m1"}, a)
	assert.Equal(t, []string{"m1", "m2"}, b)
	assert.Equal(t, 1, bus.ListenerCount())
}

func TestBus_ListenerMayUnsubscribeItself(t *testing.T) {
	bus := NewBus()

	calls := 0
	var unsub func()
	unsub = bus.SubscribePhotoSaved(func(PhotoSaved) {
		calls++
		unsub()
	})

	require.NoError(t, bus.PublishPhotoSaved(context.Background(), PhotoSaved{}))
	require.NoError(t, bus.PublishPhotoSaved(context.Background(), PhotoSaved{}))
	assert.Equal(t, 1, calls)
	assert.Zero(t, bus.ListenerCount())
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) PublishPhotoSaved(context.Context, PhotoSaved) error {
	p.calls++
	return errors.New("connection refused")
}

func TestFallbackPublisher(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.SubscribePhotoSaved(func(e PhotoSaved) { got = append(got, e.MovementID) })

	t.Run("primary fails", func(t *testing.T) {
		primary := &failingPublisher{}
		p := NewFallbackPublisher(primary, bus, zap.NewNop())

		require.NoError(t, p.PublishPhotoSaved(context.Background(), PhotoSaved{MovementID: "m1"}))
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, []string{"m1"}, got)
	})

	t.Run("primary succeeds", func(t *testing.T) {
		got = nil
		other := NewBus()
		p := NewFallbackPublisher(other, bus, zap.NewNop())

		require.NoError(t, p.PublishPhotoSaved(context.Background(), PhotoSaved{MovementID: "m2"}))
		assert.Empty(t, got)
	})

	t.Run("both fail", func(t *testing.T) {
		p := NewFallbackPublisher(&failingPublisher{}, &failingPublisher{}, zap.NewNop())
		assert.Error(t, p.PublishPhotoSaved(context.Background(), PhotoSaved{}))
	})
}

func TestRedisBridge_RelaysToBus(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rs, err := redissvc.Connect(ctx, addr, "", 0)
	require.NoError(t, err)
	defer rs.Close()

	bus := NewBus()
	got := make(chan PhotoSaved, 1)
	bus.SubscribePhotoSaved(func(e PhotoSaved) {
		select {
		case got <- e:
		default:
		}
	})

	done := make(chan error, 1)
	go func() { done <- NewRedisBridge(rs, bus, zap.NewNop()).Run(ctx) }()

	// The bridge subscribes asynchronously; publish until it is listening.
	publisher := NewRedisPublisher(rs)
	deadline := time.After(5 * time.Second)
	for {
		require.NoError(t, publisher.PublishPhotoSaved(ctx, PhotoSaved{MovementID: "m1"}))
		select {
		case e := <-got:
			assert.Equal(t, "m1", e.MovementID)
			cancel()
			assert.NoError(t, <-done)
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for relayed event")
		}
	}
}
