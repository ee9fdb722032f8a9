package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"orders-backend/internal/config"
	"orders-backend/internal/domain"
	"orders-backend/internal/infrastructure/catalog"
	"orders-backend/internal/infrastructure/events"
	"orders-backend/internal/infrastructure/repo"
	"orders-backend/internal/metrics"
	"orders-backend/internal/server"
	"orders-backend/internal/usecase"
)

func main() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
	envDefaults := config.EnvDefaults()

	env := flag.String("env", envDefaults.Env, "")
	port := flag.Int("port", envDefaults.Port, "")
	databaseURL := flag.String("database-url", envDefaults.DatabaseURL, "")
	catalogURL := flag.String("catalog-url", envDefaults.CatalogURL, "")
	catalogTimeoutMS := flag.Int("catalog-timeout-ms", envDefaults.CatalogTimeoutMS, "")
	kafkaBrokers := flag.String("kafka-brokers", envDefaults.KafkaBrokers, "")
	kafkaTopic := flag.String("kafka-topic", envDefaults.KafkaTopic, "")
	jwtSecret := flag.String("jwt-secret", envDefaults.JWTSecret, "")
	strict := flag.Bool("strict-transitions", envDefaults.StrictTransitions, "")

	flag.Parse()

	cfg := config.Config{
		Env:               *env,
		Port:              *port,
		DatabaseURL:       *databaseURL,
		CatalogURL:        *catalogURL,
		CatalogTimeoutMS:  *catalogTimeoutMS,
		KafkaBrokers:      *kafkaBrokers,
		KafkaTopic:        *kafkaTopic,
		JWTSecret:         *jwtSecret,
		StrictTransitions: *strict,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	orders, closeRepo, err := openRepo(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}

	var policy domain.TransitionPolicy = domain.PermissivePolicy{}
	if cfg.StrictTransitions {
		policy = domain.LifecyclePolicy{}
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	svc := &usecase.OrderService{
		Repo:           orders,
		Catalog:        catalog.NewClient(cfg.CatalogURL, time.Duration(cfg.CatalogTimeoutMS)*time.Millisecond),
		Policy:         policy,
		CatalogTimeout: time.Duration(cfg.CatalogTimeoutMS) * time.Millisecond,
	}
	if publisher.Enabled() {
		svc.Events = publisher
	}

	m := metrics.NewServerMetrics("api")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.New(cfg, svc, m).Handler(),
	}

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		log.Printf("orders-backend listening on %s (env=%s)", srv.Addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-stop:
		case <-gctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("server error: %v", err)
	}
	if err := closeRepo(); err != nil {
		log.Printf("store close error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		log.Printf("publisher close error: %v", err)
	}
}

// openRepo picks the postgres store when a database URL is configured
// and falls back to the in-memory store for dev runs.
func openRepo(ctx context.Context, cfg config.Config) (usecase.OrderRepo, func() error, error) {
	if cfg.DatabaseURL == "" {
		log.Printf("no database url configured, using in-memory store")
		return repo.NewMemoryOrderRepo(), func() error { return nil }, nil
	}
	pg, err := repo.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("connected to the database")
	return pg, pg.Close, nil
}
