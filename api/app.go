package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/rogerio-castellano/container-tracker/internal/config"
	"github.com/rogerio-castellano/container-tracker/internal/datasync"
	"github.com/rogerio-castellano/container-tracker/internal/db"
	"github.com/rogerio-castellano/container-tracker/internal/events"
	"github.com/rogerio-castellano/container-tracker/internal/logging"
	"github.com/rogerio-castellano/container-tracker/internal/notify"
	"github.com/rogerio-castellano/container-tracker/internal/redissvc"
	"github.com/rogerio-castellano/container-tracker/internal/repo"
	"go.uber.org/zap"
)

// app holds the stores and the syncer shared by serve and export.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	store     repo.MovementStore
	overrides repo.PhotoOverrideStore
	redis     *redissvc.RedisService
	bus       *events.Bus
	feed      *notify.Feed
	syncer    *datasync.Syncer

	closers []func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, bus: events.NewBus()}
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	if err := a.openStore(ctx); err != nil {
		a.close()
		return nil, err
	}

	if cfg.Redis.Addr != "" {
		rs, err := redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.close()
			return nil, err
		}
		a.redis = rs
		a.overrides = repo.NewRedisPhotoOverrideStore(rs)
		a.closers = append(a.closers, rs.Close)
		logger.Info("photo overrides in redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		a.overrides = repo.NewInMemoryPhotoOverrideStore()
	}

	a.feed = notify.NewFeed(0, logger)
	a.syncer = datasync.NewSyncer(a.store, a.overrides, a.bus, a.feed, logger)
	a.closers = append(a.closers, func() error {
		a.syncer.Stop()
		return nil
	})
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	switch a.cfg.Store.Driver {
	case config.StoreMemory:
		a.store = repo.NewInMemoryMovementStore()

	case config.StorePostgres:
		database, err := db.Connect(a.cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("could not connect to database: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		store := repo.NewPostgresMovementStore(database, a.logger)
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		a.store = store

	case config.StoreFirestore:
		client, err := firestore.NewClient(ctx, a.cfg.Firestore.ProjectID)
		if err != nil {
			return fmt.Errorf("could not connect to firestore: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		a.store = repo.NewFirestoreMovementStore(client, a.cfg.Firestore.Collection, a.logger)
	}

	a.logger.Info("movement store ready", zap.String("driver", a.cfg.Store.Driver))
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("shutdown", zap.Error(err))
		}
	}
}
