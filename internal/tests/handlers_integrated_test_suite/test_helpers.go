package handlers_integrated_test_suite

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/datasync"
	"github.com/rogerio-castellano/container-tracker/internal/http/router"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"github.com/rogerio-castellano/container-tracker/internal/notify"
	"github.com/rogerio-castellano/container-tracker/internal/repo"
)

const jwtSecret = "secret"

var (
	token     string
	database  *sql.DB
	overrides repo.PhotoOverrideStore
	syncer    *datasync.Syncer
	feed      *notify.Feed
)

func newRouter() http.Handler {
	return router.NewRouter(router.Options{JWTSecret: []byte(jwtSecret)})
}

func clearMovements() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := database.ExecContext(ctx, `DELETE FROM movements`)
	return err
}

func insertMovement(t *testing.T, m models.Movement) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := database.ExecContext(ctx, `
		INSERT INTO movements (id, date, origin, destination, status, container, driver, plate, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))`,
		m.ID, m.Date, m.Origin, m.Destination, m.Status, m.Container, m.Driver, m.Plate, m.PhotoURL)
	if err != nil {
		t.Fatalf("could not insert movement: %v", err)
	}
}

// eventually polls cond until it holds or five seconds pass.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
