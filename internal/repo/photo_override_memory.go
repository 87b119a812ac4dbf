package repo

import (
	"context"
	"sync"
)

type InMemoryPhotoOverrideStore struct {
	mu        sync.RWMutex
	overrides map[string]string
}

func NewInMemoryPhotoOverrideStore() *InMemoryPhotoOverrideStore {
	return &InMemoryPhotoOverrideStore{overrides: make(map[string]string)}
}

func (s *InMemoryPhotoOverrideStore) Get(_ context.Context, movementID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	url, ok := s.overrides[PhotoOverrideKey(movementID)]
	return url, ok, nil
}

func (s *InMemoryPhotoOverrideStore) GetMany(_ context.Context, movementIDs []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]string)
	for _, id := range movementIDs {
		if url, ok := s.overrides[PhotoOverrideKey(id)]; ok {
			found[id] = url
		}
	}
	return found, nil
}

func (s *InMemoryPhotoOverrideStore) Set(_ context.Context, movementID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[PhotoOverrideKey(movementID)] = url
	return nil
}

func (s *InMemoryPhotoOverrideStore) Delete(_ context.Context, movementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, PhotoOverrideKey(movementID))
	return nil
}

// Clear drops every override.
func (s *InMemoryPhotoOverrideStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]string)
}
