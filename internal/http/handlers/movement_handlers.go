package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/container-tracker/internal/events"
	"github.com/rogerio-castellano/container-tracker/internal/export"
	"github.com/rogerio-castellano/container-tracker/internal/filter"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"github.com/rogerio-castellano/container-tracker/internal/notify"
	"github.com/rogerio-castellano/container-tracker/internal/photos"
	"github.com/rogerio-castellano/container-tracker/internal/presentation"
	"github.com/rogerio-castellano/container-tracker/internal/repo"
	"go.uber.org/zap"
)

const (
	movementsBasePath = "/movements"
	maxPhotoSize      = 10 << 20
)

func sendNotification(title, description string, variant notify.Variant) {
	if notifier == nil {
		return
	}
	notifier.Notify(notify.Notification{Title: title, Description: description, Variant: variant})
}

func buildMovementsView(r *http.Request, rng filter.Range) (MovementsViewResult, error) {
	layout := presentation.LayoutTable
	if widthStr := r.URL.Query().Get("width"); widthStr != "" {
		width, err := strconv.Atoi(widthStr)
		if err != nil || width < 0 {
			return MovementsViewResult{}, fmt.Errorf("invalid width %q", widthStr)
		}
		layout = presentation.LayoutFor(width)
	}

	movements := filteredMovements(rng)
	return MovementsViewResult{
		View:  presentation.BuildView(movements, layout, movementsBasePath),
		Range: RangeResponse{Start: formatBound(rng.Start), End: formatBound(rng.End)},
		Meta:  Meta{TotalCount: len(movements), Synced: syncer.Synced()},
	}, nil
}

// GetMovementsHandler godoc
// @Summary List container movements
// @Description Movements within the date range, newest first. Without start and end the current week is used; an empty value disables that bound.
// @Tags movements
// @Produce json
// @Param start query string false "First day (yyyy-MM-dd)"
// @Param end query string false "Last day (yyyy-MM-dd)"
// @Param width query int false "Viewport width in pixels, picks cards or table layout"
// @Success 200 {object} MovementsViewResult
// @Failure 400 {string} string "Invalid input"
// @Router /movements [get]
func GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	result, err := buildMovementsView(r, rng)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// StreamMovementsHandler godoc
// @Summary Stream container movements
// @Description Server-sent events. A "movements" event carrying the filtered view is sent on connect and after every change.
// @Tags movements
// @Produce text/event-stream
// @Param start query string false "First day (yyyy-MM-dd)"
// @Param end query string false "Last day (yyyy-MM-dd)"
// @Param width query int false "Viewport width in pixels"
// @Success 200 {object} MovementsViewResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Streaming unsupported"
// @Router /movements/stream [get]
func StreamMovementsHandler(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}
	if _, err := buildMovementsView(r, rng); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Latest change wins; a slow client skips intermediate views.
	changed := make(chan struct{}, 1)
	cancel := syncer.OnChange(func([]models.Movement) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func() bool {
		result, err := buildMovementsView(r, rng)
		if err != nil {
			return false
		}
		data, err := json.Marshal(result)
		if err != nil {
			logger.Error("failed to encode movements event", zap.Error(err))
			return false
		}
		if _, err := fmt.Fprintf(w, "event: movements\ndata: %s\n\n", data); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-changed:
			if !send() {
				return
			}
		}
	}
}

// ExportMovementsHandler godoc
// @Summary Export container movements as CSV
// @Tags movements
// @Produce text/csv
// @Param start query string false "First day (yyyy-MM-dd)"
// @Param end query string false "Last day (yyyy-MM-dd)"
// @Success 200 {file} file
// @Success 204 {string} string "Nothing to export"
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /movements/export.csv [get]
func ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, filteredMovements(rng)); err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		logger.Error("could not build CSV export", zap.Error(err))
		http.Error(w, "could not export movements", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("failed to write CSV export", zap.Error(err))
	}
}

// EditMovementHandler godoc
// @Summary Open the edit flow for a movement
// @Description Redirects to the configured edit route with the movement id and its editable fields.
// @Tags movements
// @Param id path string true "Movement ID"
// @Success 303 {string} string "Redirect"
// @Failure 404 {string} string "Not found"
// @Router /movements/{id}/edit [get]
func EditMovementHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := syncer.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "movement not found", http.StatusNotFound)
		return
	}

	target, err := presentation.EditURL(editURL, m)
	if err != nil {
		logger.Error("could not build edit URL", zap.String("movement_id", m.ID), zap.Error(err))
		http.Error(w, "could not open edit", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// DeleteMovementHandler godoc
// @Summary Delete a movement
// @Description Requires confirm=true. The movement disappears from every view through the live subscription.
// @Tags movements
// @Param id path string true "Movement ID"
// @Param confirm query bool true "Explicit confirmation"
// @Success 204 {string} string "Deleted"
// @Failure 404 {string} string "Not found"
// @Failure 428 {string} string "Confirmation required"
// @Failure 500 {string} string "Internal error"
// @Router /movements/{id} [delete]
// @Security BearerAuth
func DeleteMovementHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); !confirmed {
		http.Error(w, presentation.DeleteConfirmText, http.StatusPreconditionRequired)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := movementStore.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrMovementNotFound) {
			// Removed elsewhere; its local photo override is stale either way.
			pruneOverride(ctx, id)
			http.Error(w, "movement not found", http.StatusNotFound)
			return
		}
		logger.Error("could not delete movement", zap.String("movement_id", id), zap.Error(err))
		sendNotification("Error", "No se pudo eliminar el movimiento.", notify.VariantDestructive)
		http.Error(w, "could not delete movement", http.StatusInternalServerError)
		return
	}

	pruneOverride(ctx, id)
	sendNotification("Movimiento eliminado", "El movimiento ha sido eliminado correctamente.", notify.VariantDefault)
	w.WriteHeader(http.StatusNoContent)
}

func pruneOverride(ctx context.Context, id string) {
	if photoOverrides == nil {
		return
	}
	if err := photoOverrides.Delete(ctx, id); err != nil {
		logger.Warn("could not prune photo override", zap.String("movement_id", id), zap.Error(err))
	}
}

// AttachPhotoHandler godoc
// @Summary Attach a photo to a movement
// @Tags photos
// @Accept mpfd
// @Produce json
// @Param id path string true "Movement ID"
// @Param file formData file true "Photo"
// @Success 201 {object} PhotoUploadResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Failure 501 {string} string "Photo storage not configured"
// @Router /movements/{id}/photo [post]
// @Security BearerAuth
func AttachPhotoHandler(w http.ResponseWriter, r *http.Request) {
	if photoStorage == nil {
		http.Error(w, "photo storage not configured", http.StatusNotImplemented)
		return
	}

	id := chi.URLParam(r, "id")
	if _, ok := syncer.Get(id); !ok {
		http.Error(w, "movement not found", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize+1<<20)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result := PhotoUploadResult{MovementID: id}
	if takenAt, ok := photos.TakenAt(file); ok {
		result.TakenAt = &takenAt
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		http.Error(w, "could not read file", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	photoURL, err := photoStorage.Upload(r.Context(), id, file, header.Size, contentType)
	if err != nil {
		logger.Error("could not upload photo", zap.String("movement_id", id), zap.Error(err))
		http.Error(w, "could not upload photo", http.StatusInternalServerError)
		return
	}
	result.PhotoURL = photoURL

	if photoOverrides != nil {
		if err := photoOverrides.Set(r.Context(), id, photoURL); err != nil {
			logger.Error("could not save photo override", zap.String("movement_id", id), zap.Error(err))
			http.Error(w, "could not save photo", http.StatusInternalServerError)
			return
		}
	}

	if photoPublisher != nil {
		if err := photoPublisher.PublishPhotoSaved(r.Context(), events.PhotoSaved{MovementID: id}); err != nil {
			logger.Warn("could not publish photo saved", zap.String("movement_id", id), zap.Error(err))
		}
	}

	respondJSON(w, http.StatusCreated, result)
}

var errPhotoTooLarge = errors.New("photo too large")

// readPhoto fetches a movement's photo, refusing anything over maxPhotoSize.
func readPhoto(ctx context.Context, photoURL string) ([]byte, string, error) {
	if photoFetcher == nil {
		return nil, "", errors.New("photo fetcher not configured")
	}

	body, contentType, err := photoFetcher.Fetch(ctx, photoURL)
	if err != nil {
		return nil, "", err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxPhotoSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxPhotoSize {
		return nil, "", errPhotoTooLarge
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return data, contentType, nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// ViewPhotoHandler godoc
// @Summary View a movement photo
// @Description Redirects to web photo URLs; photos kept by the service are served inline.
// @Tags photos
// @Produce image/jpeg
// @Param id path string true "Movement ID"
// @Success 200 {file} file
// @Success 302 {string} string "Redirect to the photo"
// @Failure 404 {string} string "Not found"
// @Failure 502 {string} string "Photo unavailable"
// @Router /movements/{id}/photo [get]
func ViewPhotoHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := syncer.Get(chi.URLParam(r, "id"))
	if !ok || !m.HasPhoto() {
		http.Error(w, "photo not found", http.StatusNotFound)
		return
	}
	if isWebURL(m.PhotoURL) {
		http.Redirect(w, r, m.PhotoURL, http.StatusFound)
		return
	}

	data, contentType, err := readPhoto(r.Context(), m.PhotoURL)
	if err != nil {
		if errors.Is(err, photos.ErrPhotoNotFound) {
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}
		logger.Error("could not open photo", zap.String("movement_id", m.ID), zap.Error(err))
		http.Error(w, "photo unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "inline")
	if _, err := w.Write(data); err != nil {
		logger.Warn("failed to write photo", zap.String("movement_id", m.ID), zap.Error(err))
	}
}

// DownloadPhotoHandler godoc
// @Summary Download a movement photo
// @Tags photos
// @Produce image/jpeg
// @Param id path string true "Movement ID"
// @Success 200 {file} file
// @Failure 404 {string} string "Not found"
// @Failure 502 {string} string "Download failed"
// @Router /movements/{id}/photo/download [get]
func DownloadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := syncer.Get(chi.URLParam(r, "id"))
	if !ok || !m.HasPhoto() {
		http.Error(w, "photo not found", http.StatusNotFound)
		return
	}

	data, contentType, err := readPhoto(r.Context(), m.PhotoURL)
	if err != nil {
		logger.Error("could not download photo", zap.String("movement_id", m.ID), zap.Error(err))
		sendNotification("Error de descarga", "No se pudo descargar la foto.", notify.VariantDestructive)
		http.Error(w, "could not download photo", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", presentation.PhotoFilename(m.Container)))
	if _, err := w.Write(data); err != nil {
		logger.Warn("failed to write photo", zap.String("movement_id", m.ID), zap.Error(err))
	}
}
