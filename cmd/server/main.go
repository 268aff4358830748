// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"daybook/internal/platform/config"
	"daybook/internal/platform/httpserver"
	"daybook/internal/platform/logger"
	platformmetrics "daybook/internal/platform/metrics"
	"daybook/internal/platform/middleware"
	platformredis "daybook/internal/platform/redis"
	"daybook/internal/records/handler"
	recordmetrics "daybook/internal/records/metrics"
	"daybook/internal/records/models"
	"daybook/internal/records/service"
	"daybook/internal/records/store"
	"daybook/internal/records/store/postgres"
	recordsredis "daybook/internal/records/store/redis"
)

// stores bundles the three record stores with whatever backend resources they
// hold open.
type stores struct {
	contacts     store.Store[*models.Contact]
	tasks        store.Store[*models.Task]
	appointments store.Store[*models.Appointment]
	close        func() error
}

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.close(); err != nil {
			log.Error("failed to close store backend", "error", err)
		}
	}()

	httpMetrics := platformmetrics.New()
	recordMetrics := recordmetrics.New()

	contacts := service.NewContacts(backend.contacts,
		service.WithLogger(log), service.WithMetrics(recordMetrics))
	tasks := service.NewTasks(backend.tasks,
		service.WithLogger(log), service.WithMetrics(recordMetrics))
	appointments := service.NewAppointments(backend.appointments,
		service.WithLogger(log), service.WithMetrics(recordMetrics))

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(httpMetrics))
	r.Use(middleware.ContentTypeJSON)

	handler.New(contacts, tasks, appointments, log).Register(r)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, r)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting daybook", "addr", cfg.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	return group.Wait()
}

// openStores selects the persistence backend from configuration.
func openStores(ctx context.Context, cfg config.Server) (*stores, error) {
	switch cfg.Store {
	case "memory":
		return &stores{
			contacts:     store.NewContactMemory(),
			tasks:        store.NewTaskMemory(),
			appointments: store.NewAppointmentMemory(),
			close:        func() error { return nil },
		}, nil

	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres store")
		}
		db, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &stores{
			contacts:     postgres.NewContacts(db),
			tasks:        postgres.NewTasks(db),
			appointments: postgres.NewAppointments(db),
			close:        db.Close,
		}, nil

	case "redis":
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, errors.New("REDIS_URL is required for the redis store")
		}
		return &stores{
			contacts:     recordsredis.NewContacts(client.Client),
			tasks:        recordsredis.NewTasks(client.Client),
			appointments: recordsredis.NewAppointments(client.Client),
			close:        client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
