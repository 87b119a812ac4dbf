package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/container-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"github.com/rogerio-castellano/container-tracker/internal/notify"
)

func TestDashboardMetricsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	addMovement(models.Movement{Date: day(2024, 6, 3, 9), Status: "Entregado", PhotoURL: "https://img.example.com/a.jpg"})
	addMovement(models.Movement{Date: day(2024, 6, 4, 9), Status: "Entregado"})
	addMovement(models.Movement{Date: day(2024, 6, 5, 9), Status: "En tránsito"})
	addMovement(models.Movement{Date: day(2024, 5, 1, 9), Status: "Entregado"})

	w := get(r, "/metrics/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var metrics handler.DashboardMetrics
	if err := json.NewDecoder(w.Body).Decode(&metrics); err != nil {
		t.Fatalf("failed to decode metrics: %v", err)
	}

	if metrics.TotalMovements != 4 {
		t.Errorf("expected 4 movements, got %d", metrics.TotalMovements)
	}
	if metrics.InRange != 3 {
		t.Errorf("expected 3 movements this week, got %d", metrics.InRange)
	}
	if metrics.WithPhoto != 1 {
		t.Errorf("expected 1 movement with photo, got %d", metrics.WithPhoto)
	}
	if len(metrics.ByStatus) != 2 || metrics.ByStatus[0].Status != "Entregado" || metrics.ByStatus[0].Count != 2 {
		t.Errorf("unexpected status counts %+v", metrics.ByStatus)
	}
}

func TestGetNotificationsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	feed.Notify(notify.Notification{Title: "first"})
	feed.Notify(notify.Notification{Title: "second", Variant: notify.VariantDestructive})

	w := get(r, "/notifications")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.NotificationsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode notifications: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].Title != "second" {
		t.Errorf("expected newest first, got %+v", resp.Data)
	}
}
