package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/container-tracker/internal/models"
)

type memorySubscriber struct {
	onSnapshot SnapshotHandler
	onError    ErrorHandler
}

// InMemoryMovementStore keeps movements in memory and pushes snapshots to subscribers
// synchronously on every change.
type InMemoryMovementStore struct {
	mu          sync.Mutex
	movements   []models.Movement
	subscribers map[int]memorySubscriber
	nextSubID   int
}

func NewInMemoryMovementStore() *InMemoryMovementStore {
	return &InMemoryMovementStore{
		movements:   []models.Movement{},
		subscribers: make(map[int]memorySubscriber),
	}
}

// Add stores a movement, assigning an id when it has none, and returns it.
func (s *InMemoryMovementStore) Add(m models.Movement) models.Movement {
	s.mu.Lock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.movements = append(s.movements, m)
	s.mu.Unlock()

	s.publish()
	return m
}

// Clear removes every movement.
func (s *InMemoryMovementStore) Clear() {
	s.mu.Lock()
	s.movements = []models.Movement{}
	s.mu.Unlock()

	s.publish()
}

// Fail ends every open subscription with err, the way a dropped listener would.
func (s *InMemoryMovementStore) Fail(err error) {
	s.mu.Lock()
	subs := make([]memorySubscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.subscribers = make(map[int]memorySubscriber)
	s.mu.Unlock()

	for _, sub := range subs {
		if sub.onError != nil {
			sub.onError(err)
		}
	}
}

// SubscriberCount reports how many subscriptions are open.
func (s *InMemoryMovementStore) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

func (s *InMemoryMovementStore) Subscribe(ctx context.Context, onSnapshot SnapshotHandler, onError ErrorHandler) (Unsubscribe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = memorySubscriber{onSnapshot: onSnapshot, onError: onError}
	snapshot := s.sortedLocked()
	s.mu.Unlock()

	onSnapshot(snapshot)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}, nil
}

func (s *InMemoryMovementStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	for i, m := range s.movements {
		if m.ID == id {
			s.movements = append(s.movements[:i], s.movements[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrMovementNotFound
	}
	s.publish()
	return nil
}

func (s *InMemoryMovementStore) publish() {
	s.mu.Lock()
	handlers := make([]SnapshotHandler, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		handlers = append(handlers, sub.onSnapshot)
	}
	snapshot := s.sortedLocked()
	s.mu.Unlock()

	for _, h := range handlers {
		h(cloneMovements(snapshot))
	}
}

// sortedLocked returns a copy ordered by date descending. Callers hold s.mu.
func (s *InMemoryMovementStore) sortedLocked() []models.Movement {
	out := cloneMovements(s.movements)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func cloneMovements(in []models.Movement) []models.Movement {
	out := make([]models.Movement, len(in))
	copy(out, in)
	return out
}
