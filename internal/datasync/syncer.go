// Package datasync keeps a live, photo-decorated copy of the movements collection.
package datasync

import (
	"context"
	"fmt"
	"sync"

	"github.com/rogerio-castellano/container-tracker/internal/events"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"github.com/rogerio-castellano/container-tracker/internal/notify"
	"github.com/rogerio-castellano/container-tracker/internal/repo"
	"go.uber.org/zap"
)

const (
	connectionErrorTitle       = "Error de Conexión"
	connectionErrorDescription = "No se pudieron cargar los datos."
)

// Syncer holds one subscription to the movement store and republishes the full,
// decorated collection on every snapshot and on every photo-saved signal.
type Syncer struct {
	store    repo.MovementStore
	resolver *PhotoResolver
	bus      *events.Bus
	notifier notify.Notifier
	logger   *zap.Logger

	// lifeMu serializes Start and Stop.
	lifeMu sync.Mutex
	// passMu serializes decoration passes.
	passMu sync.Mutex

	mu          sync.RWMutex
	ctx         context.Context
	generation  uint64
	raw         []models.Movement
	hasRaw      bool
	view        []models.Movement
	synced      bool
	syncedCh    chan struct{}
	unsubscribe repo.Unsubscribe
	unlisten    func()
	observers   map[int]func([]models.Movement)
	nextObs     int
}

func NewSyncer(store repo.MovementStore, overrides repo.PhotoOverrideStore, bus *events.Bus, notifier notify.Notifier, logger *zap.Logger) *Syncer {
	return &Syncer{
		store:     store,
		resolver:  NewPhotoResolver(overrides),
		bus:       bus,
		notifier:  notifier,
		logger:    logger,
		view:      []models.Movement{},
		syncedCh:  make(chan struct{}),
		observers: make(map[int]func([]models.Movement)),
	}
}

// Start opens the subscription and the photo-saved listener. A running syncer is torn
// down first, so there is never more than one listener of each kind.
func (s *Syncer) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	s.stopLocked()

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.ctx = ctx
	s.mu.Unlock()

	unsubscribe, err := s.store.Subscribe(ctx,
		func(movements []models.Movement) { s.handleSnapshot(gen, movements) },
		func(err error) { s.handleError(gen, err) },
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to movements: %w", err)
	}

	unlisten := s.bus.SubscribePhotoSaved(func(e events.PhotoSaved) {
		s.handlePhotoSaved(gen, e)
	})

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.unlisten = unlisten
	s.mu.Unlock()

	s.logger.Info("movement sync started")
	return nil
}

// Stop tears down the subscription and the photo-saved listener. The last published
// view stays readable.
func (s *Syncer) Stop() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	s.stopLocked()
}

func (s *Syncer) stopLocked() {
	s.mu.Lock()
	unsubscribe, unlisten := s.unsubscribe, s.unlisten
	s.unsubscribe, s.unlisten = nil, nil
	s.generation++
	s.mu.Unlock()

	if unlisten != nil {
		unlisten()
	}
	if unsubscribe != nil {
		unsubscribe()
		s.logger.Info("movement sync stopped")
	}
}

// Movements returns the current decorated collection, newest first.
func (s *Syncer) Movements() []models.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMovements(s.view)
}

// Get looks a movement up in the current view.
func (s *Syncer) Get(id string) (models.Movement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.view {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movement{}, false
}

// Synced reports whether at least one snapshot has been published.
func (s *Syncer) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.synced
}

// WaitSynced blocks until the first snapshot is published or ctx is done.
func (s *Syncer) WaitSynced(ctx context.Context) error {
	select {
	case <-s.syncedCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnChange registers fn to receive every published collection.
func (s *Syncer) OnChange(fn func([]models.Movement)) (cancel func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Syncer) current(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.generation
}

func (s *Syncer) handleSnapshot(gen uint64, movements []models.Movement) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	if !s.current(gen) {
		return
	}

	s.mu.Lock()
	s.raw = cloneMovements(movements)
	s.hasRaw = true
	s.mu.Unlock()

	s.logger.Debug("movements snapshot received", zap.Int("count", len(movements)))
	s.refresh(gen)
}

// handlePhotoSaved re-reads the override tier against the last snapshot. The
// subscription itself is left alone.
func (s *Syncer) handlePhotoSaved(gen uint64, e events.PhotoSaved) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	if !s.current(gen) {
		return
	}

	s.logger.Debug("photo saved, refreshing overrides", zap.String("movement_id", e.MovementID))
	s.refresh(gen)
}

func (s *Syncer) handleError(gen uint64, err error) {
	if !s.current(gen) {
		return
	}

	s.logger.Error("movements subscription failed", zap.Error(err))
	s.notifier.Notify(notify.Notification{
		Variant:     notify.VariantDestructive,
		Title:       connectionErrorTitle,
		Description: connectionErrorDescription,
	})
}

// refresh decorates the last snapshot and publishes it. Callers hold passMu.
func (s *Syncer) refresh(gen uint64) {
	s.mu.RLock()
	raw, hasRaw, ctx := s.raw, s.hasRaw, s.ctx
	s.mu.RUnlock()

	if !hasRaw {
		return
	}

	view, err := s.resolver.Resolve(ctx, raw)
	if err != nil {
		s.logger.Warn("photo overrides unavailable, using stored photo urls", zap.Error(err))
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.view = view
	first := !s.synced
	s.synced = true
	observers := make([]func([]models.Movement), 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	if first {
		close(s.syncedCh)
	}
	for _, o := range observers {
		o(cloneMovements(view))
	}
}

func cloneMovements(in []models.Movement) []models.Movement {
	out := make([]models.Movement, len(in))
	copy(out, in)
	return out
}
