package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreMovement is the document shape stored in the movements collection.
type firestoreMovement struct {
	Date        time.Time `firestore:"date"`
	Origin      string    `firestore:"origin"`
	Destination string    `firestore:"destination"`
	Status      string    `firestore:"status"`
	Container   string    `firestore:"container"`
	Driver      string    `firestore:"driver"`
	Plate       string    `firestore:"plate"`
	PhotoURL    string    `firestore:"photoUrl,omitempty"`
}

// FirestoreMovementStore serves movements from a Firestore collection through a
// realtime query listener.
type FirestoreMovementStore struct {
	client     *firestore.Client
	collection string
	logger     *zap.Logger
}

func NewFirestoreMovementStore(client *firestore.Client, collection string, logger *zap.Logger) *FirestoreMovementStore {
	if collection == "" {
		collection = MovementsCollection
	}
	return &FirestoreMovementStore{client: client, collection: collection, logger: logger}
}

func (r *FirestoreMovementStore) Subscribe(ctx context.Context, onSnapshot SnapshotHandler, onError ErrorHandler) (Unsubscribe, error) {
	listenCtx, cancel := context.WithCancel(ctx)
	it := r.client.Collection(r.collection).OrderBy("date", firestore.Desc).Snapshots(listenCtx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if listenCtx.Err() != nil || errors.Is(err, iterator.Done) || status.Code(err) == codes.Canceled {
					return
				}
				onError(fmt.Errorf("movements listener failed: %w", err))
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				onError(fmt.Errorf("failed to read movements snapshot: %w", err))
				return
			}

			movements := make([]models.Movement, 0, len(docs))
			for _, doc := range docs {
				var data firestoreMovement
				if err := doc.DataTo(&data); err != nil {
					r.logger.Warn("skipping malformed movement document",
						zap.String("id", doc.Ref.ID), zap.Error(err))
					continue
				}
				movements = append(movements, models.Movement{
					ID:          doc.Ref.ID,
					Date:        data.Date,
					Origin:      data.Origin,
					Destination: data.Destination,
					Status:      data.Status,
					Container:   data.Container,
					Driver:      data.Driver,
					Plate:       data.Plate,
					PhotoURL:    data.PhotoURL,
				})
			}
			onSnapshot(movements)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

func (r *FirestoreMovementStore) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.collection).Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrMovementNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	return nil
}
