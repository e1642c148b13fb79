package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpctx "github.com/dtroode/trueconf-console/internal/api/http/context"
	"github.com/dtroode/trueconf-console/internal/api/http/router"
	httpServer "github.com/dtroode/trueconf-console/internal/api/http/server"
	"github.com/dtroode/trueconf-console/internal/config"
	"github.com/dtroode/trueconf-console/internal/directory"
	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/metrics"
	"github.com/dtroode/trueconf-console/internal/model"
	"github.com/dtroode/trueconf-console/internal/repository/postgres"
	"github.com/dtroode/trueconf-console/internal/server"
	"github.com/dtroode/trueconf-console/internal/service"
	"github.com/dtroode/trueconf-console/internal/session"
	storage "github.com/dtroode/trueconf-console/internal/storage/minio"
	"github.com/dtroode/trueconf-console/internal/telemetry"
)

const serviceName = "trueconf-console"

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, serviceName, buildVersion, logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics, err := metrics.New(registry)
	if err != nil {
		logger.Fatal("failed to register metrics", "error", err)
	}

	directoryClient := directory.NewClient(
		cfg.Directory.ServerAddress,
		cfg.Directory.APIKey,
		&http.Client{
			Timeout:   cfg.Directory.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		appMetrics,
		logger,
	)

	var audit model.ImportAudit
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize audit database", "error", err)
		}
		defer db.Close()
		audit = postgres.NewImportRunRepository(db)
	} else {
		logger.Info("audit database not configured, import history disabled")
	}

	var reports model.Storage
	if cfg.Storage.Enabled() {
		storageClient, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		reports = storageClient
	} else {
		logger.Info("object storage not configured, import reports disabled")
	}

	authService := service.NewAuth(cfg.Auth.Password, logger)
	userService := service.NewUsers(directoryClient, cfg.Directory.EmailDomain, cfg.Directory.SearchLimit, logger)
	importService := service.NewImporter(directoryClient, cfg.Directory.EmailDomain, audit, reports, appMetrics, logger)

	sessions := session.NewManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL, cfg.HTTP.EnableHTTPS)
	ctxMgr := httpctx.NewManager()

	r := router.New(authService, userService, importService, sessions, ctxMgr, registry, appMetrics, logger)
	handler, err := r.Register()
	if err != nil {
		logger.Fatal("failed to build router", "error", err)
	}

	srv := httpServer.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("error during tracing shutdown", "error", err)
	}

	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
