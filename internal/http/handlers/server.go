package handlers

import (
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/datasync"
	"github.com/rogerio-castellano/container-tracker/internal/events"
	"github.com/rogerio-castellano/container-tracker/internal/notify"
	"github.com/rogerio-castellano/container-tracker/internal/photos"
	"github.com/rogerio-castellano/container-tracker/internal/repo"
	"go.uber.org/zap"
)

var (
	movementStore  repo.MovementStore
	photoOverrides repo.PhotoOverrideStore
	syncer         *datasync.Syncer
	notifier       *notify.Feed
	photoStorage   photos.Storage
	photoFetcher   photos.Fetcher
	photoPublisher events.Publisher

	logger   = zap.NewNop()
	location = time.Local
	now      = time.Now
	editURL  = "/movements/new"
)

func SetMovementStore(s repo.MovementStore) {
	movementStore = s
}

func SetPhotoOverrides(s repo.PhotoOverrideStore) {
	photoOverrides = s
}

func SetSyncer(s *datasync.Syncer) {
	syncer = s
}

func SetNotifier(f *notify.Feed) {
	notifier = f
}

// SetPhotoStorage enables photo uploads. A nil storage disables them.
func SetPhotoStorage(s photos.Storage) {
	photoStorage = s
}

func SetPhotoFetcher(f photos.Fetcher) {
	photoFetcher = f
}

func SetPhotoPublisher(p events.Publisher) {
	photoPublisher = p
}

func SetLogger(l *zap.Logger) {
	logger = l
}

// SetLocation sets the time zone for day bounds and date labels.
func SetLocation(loc *time.Location) {
	location = loc
}

// SetClock replaces the clock used for the default week.
func SetClock(fn func() time.Time) {
	now = fn
}

func SetEditURL(u string) {
	editURL = u
}
