package datasync

import (
	"context"

	"github.com/rogerio-castellano/container-tracker/internal/models"
	"github.com/rogerio-castellano/container-tracker/internal/repo"
)

// PhotoResolver is the two-tier photo read path. The override tier always wins over
// the authoritative store's photoUrl; without an override the stored value is kept.
type PhotoResolver struct {
	overrides repo.PhotoOverrideStore
}

func NewPhotoResolver(overrides repo.PhotoOverrideStore) *PhotoResolver {
	return &PhotoResolver{overrides: overrides}
}

// Resolve returns a decorated copy of movements. When the override tier cannot be read
// the copy carries the stored values and the error is returned alongside it.
func (r *PhotoResolver) Resolve(ctx context.Context, movements []models.Movement) ([]models.Movement, error) {
	decorated := make([]models.Movement, len(movements))
	copy(decorated, movements)

	ids := make([]string, len(movements))
	for i, m := range movements {
		ids[i] = m.ID
	}

	overrides, err := r.overrides.GetMany(ctx, ids)
	if err != nil {
		return decorated, err
	}

	for i := range decorated {
		if url, ok := overrides[decorated[i].ID]; ok && url != "" {
			decorated[i].PhotoURL = url
		}
	}
	return decorated, nil
}
