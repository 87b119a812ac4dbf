package handlers_integrated_test_suite

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/auth"
	"github.com/rogerio-castellano/container-tracker/internal/datasync"
	"github.com/rogerio-castellano/container-tracker/internal/db"
	"github.com/rogerio-castellano/container-tracker/internal/events"
	handler "github.com/rogerio-castellano/container-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/container-tracker/internal/notify"
	"github.com/rogerio-castellano/container-tracker/internal/photos"
	"github.com/rogerio-castellano/container-tracker/internal/redissvc"
	"github.com/rogerio-castellano/container-tracker/internal/repo"
	"go.uber.org/zap"
)

// TestMain runs the suite against the database in DATABASE_URL and, when REDIS_ADDR
// is set, keeps photo overrides and the photo-saved channel in redis.
func TestMain(m *testing.M) {
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		fmt.Println("DATABASE_URL not set, skipping integrated handler tests")
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	code, err := run(ctx, m, dbUrl)
	cancel()
	if err != nil {
		fmt.Println("integrated handler tests:", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func run(ctx context.Context, m *testing.M, dbUrl string) (int, error) {
	logger := zap.NewNop()

	var err error
	database, err = db.Connect(dbUrl)
	if err != nil {
		return 0, err
	}
	defer database.Close()

	store := repo.NewPostgresMovementStore(database, logger)
	if err := store.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	if err := clearMovements(); err != nil {
		return 0, err
	}

	bus := events.NewBus()
	var publisher events.Publisher = bus
	overrides = repo.NewInMemoryPhotoOverrideStore()

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rs, err := redissvc.Connect(ctx, addr, "", 0)
		if err != nil {
			return 0, err
		}
		defer rs.Close()

		overrides = repo.NewRedisPhotoOverrideStore(rs)
		publisher = events.NewRedisPublisher(rs)
		bridge := events.NewRedisBridge(rs, bus, logger)
		go bridge.Run(ctx)
	}

	storage := photos.NewMemoryStorage()
	feed = notify.NewFeed(0, logger)
	syncer = datasync.NewSyncer(store, overrides, bus, feed, logger)

	handler.SetLogger(logger)
	handler.SetLocation(time.UTC)
	handler.SetMovementStore(store)
	handler.SetPhotoOverrides(overrides)
	handler.SetSyncer(syncer)
	handler.SetNotifier(feed)
	handler.SetPhotoStorage(storage)
	handler.SetPhotoFetcher(photos.NewHTTPFetcher(storage))
	handler.SetPhotoPublisher(publisher)

	if err := syncer.Start(ctx); err != nil {
		return 0, err
	}
	defer syncer.Stop()

	token, err = auth.GenerateToken([]byte(jwtSecret), "operator", "admin", time.Hour)
	if err != nil {
		return 0, err
	}

	return m.Run(), nil
}

