package main

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/adapters/cache"
	"delivery-schedule-service/internal/adapters/events"
	"delivery-schedule-service/internal/adapters/repositories"
	"delivery-schedule-service/internal/api"
	"delivery-schedule-service/internal/config"
	"delivery-schedule-service/internal/platform/auth"
	"delivery-schedule-service/internal/platform/db"
	"delivery-schedule-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, Redis, Kafka) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, dialect, cfg); err != nil {
		return err
	}

	store := repositories.NewSQLStore(conn, dialect)
	svc := services.NewScheduleService(store, store, store, store, cfg.Location)

	if cfg.RedisURL != "" {
		client, err := db.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()

		svc.Cache = cache.NewRedisScheduleCache(client, cfg.CacheTTL)
		log.Printf("schedule cache enabled ttl=%s", cfg.CacheTTL)
	}

	if cfg.KafkaBroker != "" {
		publisher := events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		defer publisher.Close()

		svc.Events = publisher
		log.Printf("publishing events broker=%s topic=%s", cfg.KafkaBroker, cfg.KafkaTopic)
	} else {
		svc.Events = events.LogPublisher{}
	}

	router := api.NewRouter(svc, auth.NewTokenService(cfg.JWTSecret), conn)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server listening addr=:%s db=%s tz=%s", cfg.Port, cfg.DBDriver, cfg.Location)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, cfg config.Config) error {
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if !cfg.SeedOnStart {
		return nil
	}
	if err := repositories.SeedUsersFromJSON(ctx, conn, dialect, cfg.SeedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
