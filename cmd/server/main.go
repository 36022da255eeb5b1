package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kanda123-lab/querygen"
	"github.com/kanda123-lab/querygen/api"
	"github.com/kanda123-lab/querygen/config"
	"github.com/kanda123-lab/querygen/pkg/logger"
	"github.com/kanda123-lab/querygen/storage"
	"github.com/kanda123-lab/querygen/storage/memory"
	"github.com/kanda123-lab/querygen/storage/mongokv"
	"github.com/kanda123-lab/querygen/storage/rediskv"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger(cfg.ServiceName, cfg.LogLevel())
	defer logger.Cleanup(log)
	log.Info("Service env",
		logger.String("environment", cfg.Environment),
		logger.String("dialect", cfg.DefaultDialect),
		logger.String("store", cfg.StoreBackend),
	)

	if _, err := querygen.New(cfg.DefaultDialect); err != nil {
		log.Fatal("querygen.New", logger.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal("openStore", logger.Error(err))
	}

	lib := querygen.NewLibrary(store, log, cfg.GeneratorOptions()...)
	defer lib.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	api.NewHandler(lib, cfg.DefaultDialect, log, cfg.GeneratorOptions()...).RegisterRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP: Server being started...", logger.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server.ListenAndServe", logger.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server.Shutdown", logger.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.StorageI, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreRedis:
		return rediskv.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.StoreMongo:
		return mongokv.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
