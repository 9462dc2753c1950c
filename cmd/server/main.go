package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/toomuch2learn/catalogue-service/internal/adapter/handler"
	"github.com/toomuch2learn/catalogue-service/internal/adapter/storage"
	"github.com/toomuch2learn/catalogue-service/internal/config"
	"github.com/toomuch2learn/catalogue-service/internal/core/service"
	"github.com/toomuch2learn/catalogue-service/internal/logging"
	"github.com/toomuch2learn/catalogue-service/internal/relay"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logger.Fatal("failed to open mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	repo := storage.NewMySQLAdapter(db)
	if err := repo.Migrate(); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	logger.Info("connected to redis")
	cache := storage.NewRedisAdapter(rdb)

	files, err := storage.NewFileStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	// Event pipeline: one relay, one hub, one dispatch loop.
	hub := relay.NewHub()
	eventRelay := relay.NewRelay(hub, logger)
	eventRelay.Start(ctx)

	catalogue := service.NewCatalogueService(repo, cache, eventRelay, logger)

	httpHandler := handler.NewHTTPHandler(catalogue, files, cfg.Stream.Delay, logger)
	eventsHandler := handler.NewEventsHandler(hub, cfg.Stream.Delay, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.NewRouter(httpHandler, eventsHandler, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown error", zap.Error(err))
	}

	// Stop the dispatch loop; undelivered events are dropped on shutdown.
	cancel()

	rdb.Close()
	db.Close()
	logger.Info("stopped")
}
