package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	handler "github.com/rogerio-castellano/container-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/container-tracker/internal/models"
)

func TestLiveInsertShowsUpInView(t *testing.T) {
	t.Cleanup(func() { clearMovements() })
	r := newRouter()

	m := models.Movement{
		ID:          uuid.NewString(),
		Date:        time.Date(2024, 6, 4, 15, 0, 0, 0, time.UTC),
		Origin:      "Puerto",
		Destination: "Patio",
		Status:      "Entregado",
		Container:   "MSCU1234567",
		Driver:      "Juan",
		Plate:       "ABC-123",
	}
	insertMovement(t, m)

	eventually(t, "inserted movement", func() bool {
		_, ok := syncer.Get(m.ID)
		return ok
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/movements?start=2024-06-04&end=2024-06-04", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var view handler.MovementsViewResult
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	if len(view.Rows) != 1 || view.Rows[0].ID != m.ID {
		t.Fatalf("expected the inserted movement, got %+v", view.Rows)
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/movements/export.csv?start=2024-06-04&end=2024-06-04", nil))
	expected := "chofer,placa,fecha,tipo de movimiento,contenedor\n" +
		`Juan,ABC-123,2024-06-04,"Puerto -> Patio (Entregado)",MSCU1234567`
	if w.Body.String() != expected {
		t.Errorf("unexpected CSV:\n%s", w.Body.String())
	}
}

func TestDeleteRemovesFromEveryView(t *testing.T) {
	t.Cleanup(func() { clearMovements() })
	r := newRouter()

	m := models.Movement{ID: uuid.NewString(), Date: time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC), Container: "TGHU7654321"}
	insertMovement(t, m)
	eventually(t, "inserted movement", func() bool {
		_, ok := syncer.Get(m.ID)
		return ok
	})

	req := httptest.NewRequest(http.MethodDelete, "/movements/"+m.ID+"?confirm=true", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if w := serve(r, req); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	eventually(t, "deleted movement to disappear", func() bool {
		_, ok := syncer.Get(m.ID)
		return !ok
	})

	req = httptest.NewRequest(http.MethodDelete, "/movements/"+m.ID+"?confirm=true", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if w := serve(r, req); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestPhotoUploadOverridesStoredURL(t *testing.T) {
	t.Cleanup(func() { clearMovements() })
	r := newRouter()

	m := models.Movement{
		ID: uuid.NewString(), Date: time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC),
		Container: "MSCU 999", PhotoURL: "https://img.example.com/stored.jpg",
	}
	insertMovement(t, m)
	eventually(t, "inserted movement", func() bool {
		_, ok := syncer.Get(m.ID)
		return ok
	})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "photo.jpg")
	part.Write([]byte("jpeg bytes"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/movements/"+m.ID+"/photo", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.PhotoUploadResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode upload result: %v", err)
	}
	t.Cleanup(func() { overrides.Delete(context.Background(), m.ID) })

	eventually(t, "override to be applied", func() bool {
		got, _ := syncer.Get(m.ID)
		return got.PhotoURL == resp.PhotoURL
	})

	w = serve(r, httptest.NewRequest(http.MethodGet, "/movements/"+m.ID+"/photo/download", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if w.Body.String() != "jpeg bytes" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}
