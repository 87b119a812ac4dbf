package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/container-tracker/internal/models"
)

// SnapshotHandler receives the full movement collection, newest first.
type SnapshotHandler func(movements []models.Movement)

// ErrorHandler receives the error that ended a subscription.
type ErrorHandler func(err error)

// Unsubscribe tears down a subscription. It is safe to call more than once.
type Unsubscribe func()

// MovementStore is the authoritative store of movements.
//
// Subscribe delivers an initial snapshot and then one snapshot per change, always
// ordered by date descending. A transport error is reported once through onError and
// ends the subscription.
type MovementStore interface {
	Subscribe(ctx context.Context, onSnapshot SnapshotHandler, onError ErrorHandler) (Unsubscribe, error)
	Delete(ctx context.Context, id string) error
}

const MovementsCollection = "movements"

var ErrMovementNotFound = errors.New("movement not found")
