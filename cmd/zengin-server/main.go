package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/handler"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/lookup"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/middleware"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	mode := flag.String("mode", "", "lookup mode override (preloaded, embedded, ondemand, redis, postgres)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Source.Mode = *mode
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid -mode: %v\n", err)
			os.Exit(1)
		}
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting lookup service", "port", cfg.Server.Port, "mode", cfg.Source.Mode, "source_dir", cfg.Source.Dir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	if cfg.Metrics.Enabled {
		shutdownMetrics := m.StartServer(cfg.Metrics.Port)
		defer shutdownMetrics(context.Background())
	}

	checker := health.NewChecker()
	checker.SetInfo("mode", cfg.Source.Mode)

	src, closeSource, err := openSource(ctx, cfg, m, checker)
	if err != nil {
		slog.Error("failed to open lookup source", "mode", cfg.Source.Mode, "error", err)
		os.Exit(1)
	}
	defer closeSource()

	var tracker lookup.Tracker
	if cfg.Analytics.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.LookupEvents)
		defer producer.Close()
		collector := analytics.NewCollector(producer, cfg.Analytics.BufferSize, m.AnalyticsEventsDropped.Inc)
		collector.Start()
		defer collector.Close()
		tracker = collector
		slog.Info("lookup analytics enabled", "topic", cfg.Kafka.Topics.LookupEvents)
	}

	h := handler.New(lookup.Instrument(src, cfg.Source.Mode, m, tracker))

	mux := http.NewServeMux()
	h.Register(mux)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.CORS(middleware.CORSConfig{AllowOrigins: cfg.Server.CORSOrigins, MaxAge: 3600})(chain)
	chain = middleware.Metrics(m)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("lookup service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	// In-flight handlers may still track events; the deferred collector and
	// producer closes must run after they finish.
	<-shutdownDone

	slog.Info("lookup service stopped")
}
