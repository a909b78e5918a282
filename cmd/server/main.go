package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/salary"
	"staffhub/internal/domain/staff"
	"staffhub/internal/platform/config"
	"staffhub/internal/platform/db"
	"staffhub/internal/platform/metrics"
	"staffhub/internal/platform/uploads"
	authhandler "staffhub/internal/transport/http/handlers/auth"
	salaryhandler "staffhub/internal/transport/http/handlers/salary"
	staffhandler "staffhub/internal/transport/http/handlers/staff"
	"staffhub/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	uploadStore, err := uploads.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir init failed: %v", err)
	}

	staffStore := staff.NewStore(pool)
	salaryStore := salary.NewStore(pool)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.Metrics(collector))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(staffStore, cfg.JWTSecret)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
			r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
			authHandler.RegisterRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.JWTSecret))

			staffHandler := staffhandler.NewHandler(staffStore, uploadStore)
			staffHandler.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
				salaryHandler := salaryhandler.NewHandler(salaryStore)
				salaryHandler.RegisterRoutes(r)
			})
		})
	})

	log.Printf("staffhub server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
