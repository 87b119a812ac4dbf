package repo

import "context"

// PhotoOverrideStore is the local override tier for photo URLs. A value stored here
// takes precedence over the store's photoUrl when a movement is displayed.
type PhotoOverrideStore interface {
	Get(ctx context.Context, movementID string) (string, bool, error)
	GetMany(ctx context.Context, movementIDs []string) (map[string]string, error)
	Set(ctx context.Context, movementID, url string) error
	Delete(ctx context.Context, movementID string) error
}

// PhotoOverrideKey is the cache key for a movement's photo override.
func PhotoOverrideKey(movementID string) string {
	return "photo_" + movementID
}
