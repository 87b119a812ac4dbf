package handlers

import (
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/notify"
	"github.com/rogerio-castellano/container-tracker/internal/presentation"
)

type RangeResponse struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type Meta struct {
	TotalCount int  `json:"total_count"`
	Synced     bool `json:"synced"`
}

type MovementsViewResult struct {
	presentation.View
	Range RangeResponse `json:"range"`
	Meta  Meta          `json:"meta"`
}

type PhotoUploadResult struct {
	MovementID string     `json:"movement_id"`
	PhotoURL   string     `json:"photo_url"`
	TakenAt    *time.Time `json:"taken_at,omitempty"`
}

type NotificationsResult struct {
	Data []notify.Notification `json:"data"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DashboardMetrics struct {
	TotalMovements int           `json:"total_movements"`
	InRange        int           `json:"in_range"`
	WithPhoto      int           `json:"with_photo"`
	ByStatus       []StatusCount `json:"by_status"`
}
