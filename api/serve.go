package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/config"
	"github.com/rogerio-castellano/container-tracker/internal/events"
	"github.com/rogerio-castellano/container-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/container-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/container-tracker/internal/http/router"
	"github.com/rogerio-castellano/container-tracker/internal/photos"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	logger := a.logger

	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}

	memory := photos.NewMemoryStorage()
	var storage photos.Storage = memory
	allowedHosts := a.cfg.Photos.AllowedHosts
	if a.cfg.Minio.Endpoint != "" {
		ms, err := photos.NewMinioStorage(ctx, minioConfig(a.cfg.Minio), logger)
		if err != nil {
			return err
		}
		storage = ms
		allowedHosts = append(allowedHosts, ms.PublicURL())
	} else {
		logger.Warn("minio not configured, photos are kept in memory")
	}

	if err := a.syncer.Start(ctx); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", a.cfg.HTTP.Addr)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	// With redis, uploads are announced on the shared channel and the bridge feeds
	// them back into the local bus, so other instances refresh too. When redis is
	// unreachable the local bus still hears about the upload.
	var publisher events.Publisher = a.bus
	if a.redis != nil {
		publisher = events.NewFallbackPublisher(events.NewRedisPublisher(a.redis), a.bus, logger)
		bridge := events.NewRedisBridge(a.redis, a.bus, logger)
		g.Go(func() error { return bridge.Run(ctx) })
	}

	handlers.SetLogger(logger)
	handlers.SetLocation(loc)
	handlers.SetEditURL(a.cfg.Edit.URL)
	handlers.SetMovementStore(a.store)
	handlers.SetPhotoOverrides(a.overrides)
	handlers.SetSyncer(a.syncer)
	handlers.SetNotifier(a.feed)
	handlers.SetPhotoStorage(storage)
	handlers.SetPhotoFetcher(photos.NewHTTPFetcher(memory, allowedHosts...))
	handlers.SetPhotoPublisher(publisher)

	limiter := rl.New(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst)
	g.Go(func() error {
		limiter.StartVisitorCleanupLoop(ctx)
		return nil
	})

	handler := router.NewRouter(router.Options{
		JWTSecret: []byte(a.cfg.Auth.JWTSecret),
		Limiter:   limiter,
		Logger:    logger,
	})

	g.Go(func() error { return serveHTTP(ctx, ln, handler, logger) })

	return g.Wait()
}

func minioConfig(c config.MinioConfig) photos.MinioConfig {
	return photos.MinioConfig{
		Endpoint:  c.Endpoint,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Bucket:    c.Bucket,
		UseSSL:    c.UseSSL,
		PublicURL: c.PublicURL,
	}
}

// serveHTTP serves on ln until ctx is done. Request contexts derive from ctx, so
// long-lived streams end as soon as shutdown starts.
func serveHTTP(ctx context.Context, ln net.Listener, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
