package repo

import (
	"context"
	"os"
	"testing"

	"github.com/rogerio-castellano/container-tracker/internal/redissvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPhotoOverrideStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	rs, err := redissvc.Connect(ctx, addr, "", 0)
	require.NoError(t, err)
	defer rs.Close()

	s := NewRedisPhotoOverrideStore(rs)
	t.Cleanup(func() {
		_ = s.Delete(ctx, "test-m1")
		_ = s.Delete(ctx, "test-m2")
	})

	require.NoError(t, s.Set(ctx, "test-m1", "https://local/m1.jpg"))

	stored, err := rs.Rdb().Get(ctx, "photo_test-m1").Result()
	require.NoError(t, err)
	assert.Equal(t, "https://local/m1.jpg", stored)

	many, err := s.GetMany(ctx, []string{"test-m1", "test-m2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"test-m1": "https://local/m1.jpg"}, many)

	require.NoError(t, s.Delete(ctx, "test-m1"))
	_, ok, err := s.Get(ctx, "test-m1")
	require.NoError(t, err)
	assert.False(t, ok)
}
