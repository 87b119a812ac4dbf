package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/container-tracker/internal/redissvc"
)

// RedisPhotoOverrideStore keeps photo overrides as plain string keys (photo_<id>).
type RedisPhotoOverrideStore struct {
	rdb *redis.Client
}

func NewRedisPhotoOverrideStore(rs *redissvc.RedisService) *RedisPhotoOverrideStore {
	return &RedisPhotoOverrideStore{rdb: rs.Rdb()}
}

func (s *RedisPhotoOverrideStore) Get(ctx context.Context, movementID string) (string, bool, error) {
	url, err := s.rdb.Get(ctx, PhotoOverrideKey(movementID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read photo override: %w", err)
	}
	return url, url != "", nil
}

func (s *RedisPhotoOverrideStore) GetMany(ctx context.Context, movementIDs []string) (map[string]string, error) {
	found := make(map[string]string)
	if len(movementIDs) == 0 {
		return found, nil
	}

	keys := make([]string, len(movementIDs))
	for i, id := range movementIDs {
		keys[i] = PhotoOverrideKey(id)
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read photo overrides: %w", err)
	}

	for i, v := range values {
		if url, ok := v.(string); ok && url != "" {
			found[movementIDs[i]] = url
		}
	}
	return found, nil
}

func (s *RedisPhotoOverrideStore) Set(ctx context.Context, movementID, url string) error {
	if err := s.rdb.Set(ctx, PhotoOverrideKey(movementID), url, 0).Err(); err != nil {
		return fmt.Errorf("failed to store photo override: %w", err)
	}
	return nil
}

func (s *RedisPhotoOverrideStore) Delete(ctx context.Context, movementID string) error {
	if err := s.rdb.Del(ctx, PhotoOverrideKey(movementID)).Err(); err != nil {
		return fmt.Errorf("failed to delete photo override: %w", err)
	}
	return nil
}
