package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/maxviazov/bookstore-service/internal/config"
	"github.com/maxviazov/bookstore-service/internal/handler"
	"github.com/maxviazov/bookstore-service/internal/logger"
	"github.com/maxviazov/bookstore-service/internal/repository"
	"github.com/maxviazov/bookstore-service/internal/repository/memory"
	"github.com/maxviazov/bookstore-service/internal/repository/postgres"
	"github.com/maxviazov/bookstore-service/internal/service"
)

// storage bundles what the service layer and the health probes need from a backend.
type storage struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	tx         repository.TxManager
	pinger     repository.Pinger
	close      func()
}

func main() {
	configPath := pflag.StringP("config", "c", envOr("APP_CONFIG_FILE", "config.yaml"), "path to the YAML config file")
	seedDemo := pflag.Bool("seed-demo", false, "fill the memory store with sample categories and products")
	pflag.Parse()

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	inheritAppFields(cfg)
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := openStorage(sigCtx, cfg, &appLogger, *seedDemo)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("storage initialization failed")
	}
	defer store.close()

	categorySvc := service.NewCategoryService(store.categories, store.products, store.tx, appLogger)
	router := handler.NewRouter(appLogger, store.pinger, categorySvc)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeoutDuration(),
		WriteTimeout: cfg.HTTP.WriteTimeoutDuration(),
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("driver", cfg.Storage.Driver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-sigCtx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			appLogger.Error().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("service stopped")
}

func openStorage(ctx context.Context, cfg *config.Config, l *zerolog.Logger, seed bool) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		s := memory.NewStore()
		if seed {
			if err := seedMemory(s); err != nil {
				return nil, err
			}
		}
		return &storage{
			categories: s.Categories(),
			products:   s.Products(),
			tx:         s.TxManager(),
			pinger:     s,
			close:      func() {},
		}, nil
	}

	repo, err := repository.New(ctx, cfg, l)
	if err != nil {
		return nil, err
	}
	pool := repo.Pool()
	return &storage{
		categories: postgres.NewCategoryRepository(pool),
		products:   postgres.NewProductRepository(pool),
		tx:         postgres.NewTxManager(pool),
		pinger:     postgres.NewPinger(pool),
		close:      repo.Close,
	}, nil
}

// inheritAppFields fills logger fields the YAML left empty from the app section.
func inheritAppFields(cfg *config.Config) {
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
