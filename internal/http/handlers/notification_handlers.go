package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/container-tracker/internal/notify"
)

// GetNotificationsHandler godoc
// @Summary Recent user notifications, newest first
// @Tags notifications
// @Produce json
// @Success 200 {object} NotificationsResult
// @Router /notifications [get]
func GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	result := NotificationsResult{Data: []notify.Notification{}}
	if notifier != nil {
		result.Data = append(result.Data, notifier.Recent()...)
	}
	respondJSON(w, http.StatusOK, result)
}
