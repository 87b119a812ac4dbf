package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/container-tracker/docs"
	"github.com/rogerio-castellano/container-tracker/internal/http/handlers"
	mw "github.com/rogerio-castellano/container-tracker/internal/http/middleware"
	rl "github.com/rogerio-castellano/container-tracker/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Options struct {
	JWTSecret []byte
	Limiter   *rl.Limiter
	Logger    *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if opts.Logger != nil {
		r.Use(mw.RequestLogger(opts.Logger))
	}
	r.Use(chimw.Recoverer)
	if opts.Limiter != nil {
		r.Use(mw.RateLimit(opts.Limiter))
	}

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/movements", func(r chi.Router) {
		r.Get("/", handlers.GetMovementsHandler)
		r.Get("/stream", handlers.StreamMovementsHandler)
		r.Get("/export.csv", handlers.ExportMovementsHandler)
		r.Get("/{id}/edit", handlers.EditMovementHandler)
		r.Get("/{id}/photo", handlers.ViewPhotoHandler)
		r.Get("/{id}/photo/download", handlers.DownloadPhotoHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware(opts.JWTSecret))
			r.Delete("/{id}", handlers.DeleteMovementHandler)
			r.Post("/{id}/photo", handlers.AttachPhotoHandler)
		})
	})

	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	r.Get("/notifications", handlers.GetNotificationsHandler)

	return r
}
