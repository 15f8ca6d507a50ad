package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/feed"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	gdb, err := db.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("db_init_failed", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	logger.Info("db_ready", "driver", cfg.DB.Driver)

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		prod, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Error("kafka_init_failed", "error", err)
			os.Exit(1)
		}
		publisher = prod
	}

	store := repo.New(gdb)
	catalog := &service.CatalogService{Store: store, Events: publisher}
	ingestor := &feed.Ingestor{
		Source:  feed.NewHTTPSource(cfg.Feed.URL, cfg.Feed.Timeout),
		Catalog: catalog,
	}

	var searchHTTP *httpserver.SearchHTTP
	if cfg.Elastic.URL != "" {
		client, err := search.NewClient(cfg)
		if err != nil {
			logger.Error("elasticsearch_init_failed", "error", err)
			os.Exit(1)
		}
		index := search.New(client, cfg.Elastic.Index)
		if err := index.Ping(ctx); err != nil {
			logger.Warn("elasticsearch_unreachable", "error", err)
		}
		ingestor.Indexer = index
		searchHTTP = &httpserver.SearchHTTP{Index: index}
	}

	if cfg.Feed.RefreshOnStart {
		refreshCtx, cancel := context.WithTimeout(ctx, 2*cfg.Feed.Timeout)
		if _, err := ingestor.RefreshCatalog(refreshCtx); err != nil {
			logger.Warn("startup_refresh_failed", "error", err)
		}
		cancel()
	}

	var scheduler *feed.Scheduler
	if cfg.Feed.RefreshCron != "" {
		scheduler, err = feed.NewScheduler(cfg.Feed.RefreshCron, ingestor, 2*cfg.Feed.Timeout, logger)
		if err != nil {
			logger.Error("scheduler_init_failed", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("feed_scheduler_started", "cron", cfg.Feed.RefreshCron)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.CORS(), httpserver.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:    &httpserver.AuthHTTP{Svc: &service.AuthService{Users: store, Hasher: hash.NewBcrypt(0), Events: publisher}},
		Cart:    &httpserver.CartHTTP{Svc: &service.CartService{Store: store, Events: publisher}},
		Catalog: &httpserver.CatalogHTTP{Svc: catalog},
		Feed:    &httpserver.FeedHTTP{Ingestor: ingestor},
		Search:  searchHTTP,
		Ready:   func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Feed.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	go func() {
		<-quit
		logger.Error("force_exit")
		os.Exit(1)
	}()

	logger.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	if err := publisher.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}

	logger.Info("shutdown_complete")
}
