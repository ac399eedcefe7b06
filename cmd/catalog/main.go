package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/internal/config"
	"ProductCatalog/pkg/kit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := kit.NewLogger(cfg.Service, cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	logger.Info("config loaded", zap.Stringer("config", cfg))

	store := catalog.NewMemStoreWith()
	if cfg.Catalog.Seed {
		store = catalog.NewMemStore()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := catalog.NewHandler(
		&catalog.Server{Store: store, Log: logger},
		catalog.HTTPDeps{
			Log:            logger,
			Service:        cfg.Service,
			Registry:       reg,
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsToken:   cfg.Metrics.Token,
		},
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadTimeout:       cfg.Server.Timeout.Read,
		WriteTimeout:      cfg.Server.Timeout.Write,
		IdleTimeout:       cfg.Server.Timeout.Idle,
		ReadHeaderTimeout: cfg.Server.Timeout.ReadHeader,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	if err := kit.RunHTTPServer(srv, cfg.Server.Timeout.Shutdown, logger); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
