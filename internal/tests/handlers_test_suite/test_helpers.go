package handlers_test_suite

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/auth"
	"github.com/rogerio-castellano/container-tracker/internal/datasync"
	"github.com/rogerio-castellano/container-tracker/internal/events"
	handler "github.com/rogerio-castellano/container-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/container-tracker/internal/http/router"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"github.com/rogerio-castellano/container-tracker/internal/notify"
	"github.com/rogerio-castellano/container-tracker/internal/photos"
	"github.com/rogerio-castellano/container-tracker/internal/repo"
	"go.uber.org/zap"
)

const (
	jwtSecret = "secret"
	editBase  = "/movements/new"
)

var (
	token         string
	movementStore *repo.InMemoryMovementStore
	overrides     *repo.InMemoryPhotoOverrideStore
	photoStorage  *photos.MemoryStorage
	bus           *events.Bus
	feed          *notify.Feed
	syncer        *datasync.Syncer

	// Wednesday of the week 2024-06-03 .. 2024-06-09.
	fixedNow = time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
)

func init() {
	setupTestRepos()

	var err error
	token, err = auth.GenerateToken([]byte(jwtSecret), "operator", "admin", time.Hour)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos() {
	logger := zap.NewNop()

	movementStore = repo.NewInMemoryMovementStore()
	overrides = repo.NewInMemoryPhotoOverrideStore()
	photoStorage = photos.NewMemoryStorage()
	bus = events.NewBus()
	feed = notify.NewFeed(0, logger)
	syncer = datasync.NewSyncer(movementStore, overrides, bus, feed, logger)

	handler.SetLogger(logger)
	handler.SetLocation(time.UTC)
	handler.SetClock(func() time.Time { return fixedNow })
	handler.SetEditURL(editBase)
	handler.SetMovementStore(movementStore)
	handler.SetPhotoOverrides(overrides)
	handler.SetSyncer(syncer)
	handler.SetNotifier(feed)
	handler.SetPhotoStorage(photoStorage)
	handler.SetPhotoFetcher(photos.NewHTTPFetcher(photoStorage))
	handler.SetPhotoPublisher(bus)

	if err := syncer.Start(context.Background()); err != nil {
		panic(fmt.Sprintf("error starting syncer: %v", err))
	}
}

func newRouter() http.Handler {
	return router.NewRouter(router.Options{JWTSecret: []byte(jwtSecret)})
}

func clearAll() {
	movementStore.Clear()
	overrides.Clear()
	feed.Clear()
}

func addMovement(m models.Movement) models.Movement {
	if m.Status == "" {
		m.Status = "En tránsito"
	}
	return movementStore.Add(m)
}

func day(y int, mo time.Month, d, h int) time.Time {
	return time.Date(y, mo, d, h, 0, 0, 0, time.UTC)
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deleteMovement(r http.Handler, id string, confirm bool) *httptest.ResponseRecorder {
	target := "/movements/" + id
	if confirm {
		target += "?confirm=true"
	}
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func uploadPhoto(r http.Handler, id string, content []byte) *httptest.ResponseRecorder {
	body, contentType := multipartPhoto(content, "photo.jpg")
	req := httptest.NewRequest(http.MethodPost, "/movements/"+id+"/photo", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartPhoto(content []byte, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write(content)

	writer.Close()
	return &buf, writer.FormDataContentType()
}

// failingDeleteStore rejects every delete.
type failingDeleteStore struct {
	*repo.InMemoryMovementStore
}

func (failingDeleteStore) Delete(context.Context, string) error {
	return fmt.Errorf("permission denied")
}
