package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/filter"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"go.uber.org/zap"
)

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		logger.Warn("failed to write JSON response", zap.Error(err))
	}
}

// rangeFromQuery reads start/end (yyyy-MM-dd). With neither parameter present the
// current week is used; a present but empty parameter disables that bound.
func rangeFromQuery(q url.Values) (filter.Range, error) {
	if !q.Has("start") && !q.Has("end") {
		return filter.CurrentWeek(now().In(location)), nil
	}
	return filter.ParseRange(q.Get("start"), q.Get("end"), location)
}

// filteredMovements returns the synced view, localized and filtered by r.
func filteredMovements(r filter.Range) []models.Movement {
	movements := syncer.Movements()
	for i := range movements {
		movements[i].Date = movements[i].Date.In(location)
	}
	return filter.Apply(movements, r)
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(filter.DateLayout)
}
