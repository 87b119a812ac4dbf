package handlers_test_suite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/rogerio-castellano/container-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"github.com/rogerio-castellano/container-tracker/internal/notify"
)

func TestDeleteMovement(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	m := addMovement(models.Movement{Date: day(2024, 6, 4, 10), Container: "MSCU1234567", PhotoURL: "https://img.example.com/a.jpg"})
	if err := overrides.Set(context.Background(), m.ID, "https://img.example.com/b.jpg"); err != nil {
		t.Fatalf("could not set override: %v", err)
	}

	w := deleteMovement(r, m.ID, true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	if _, ok := syncer.Get(m.ID); ok {
		t.Error("expected movement to be gone from the synced view")
	}
	if _, ok, _ := overrides.Get(context.Background(), m.ID); ok {
		t.Error("expected photo override to be pruned")
	}

	recent := feed.Recent()
	if len(recent) == 0 || recent[0].Title != "Movimiento eliminado" || recent[0].Variant != notify.VariantDefault {
		t.Errorf("expected a success notification, got %+v", recent)
	}
}

func TestDeleteMovement_RequiresConfirmation(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	m := addMovement(models.Movement{Date: day(2024, 6, 4, 10), Container: "A"})

	w := deleteMovement(r, m.ID, false)
	if w.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected 428 Precondition Required, got %d", w.Code)
	}
	if _, ok := syncer.Get(m.ID); !ok {
		t.Error("expected movement to survive an unconfirmed delete")
	}
}

func TestDeleteMovement_RequiresToken(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	m := addMovement(models.Movement{Date: day(2024, 6, 4, 10), Container: "A"})

	req := httptest.NewRequest(http.MethodDelete, "/movements/"+m.ID+"?confirm=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestDeleteMovement_NotFound(t *testing.T) {
	r := newRouter()

	if w := deleteMovement(r, "missing", true); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestDeleteMovement_AlreadyRemovedPrunesOverride(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	if err := overrides.Set(context.Background(), "removed-elsewhere", "memory://movements/x.jpg"); err != nil {
		t.Fatalf("could not set override: %v", err)
	}

	if w := deleteMovement(r, "removed-elsewhere", true); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", w.Code)
	}
	if _, ok, _ := overrides.Get(context.Background(), "removed-elsewhere"); ok {
		t.Error("expected the stale photo override to be pruned")
	}
}

func TestDeleteMovement_FailureNotifies(t *testing.T) {
	t.Cleanup(clearAll)
	handler.SetMovementStore(failingDeleteStore{movementStore})
	t.Cleanup(func() { handler.SetMovementStore(movementStore) })
	r := newRouter()

	m := addMovement(models.Movement{Date: day(2024, 6, 4, 10), Container: "A"})

	w := deleteMovement(r, m.ID, true)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 Internal Server Error, got %d", w.Code)
	}
	if _, ok := syncer.Get(m.ID); !ok {
		t.Error("expected movement to remain after a failed delete")
	}

	recent := feed.Recent()
	if len(recent) == 0 || recent[0].Variant != notify.VariantDestructive {
		t.Errorf("expected a destructive notification, got %+v", recent)
	}
}
