package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AngelCh415/adreport-proxy/internal/config"
	"github.com/AngelCh415/adreport-proxy/internal/httpx"
	"github.com/AngelCh415/adreport-proxy/internal/ingest"
	"github.com/AngelCh415/adreport-proxy/internal/logger"
	"github.com/AngelCh415/adreport-proxy/internal/metrics"
)

func main() {
	dotEnvErr := config.LoadDotEnv(".env")
	cfg := config.FromEnv()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "adreport-proxy"})
	slog.SetDefault(log)

	if dotEnvErr != nil {
		log.Error("config error", slog.String("err", dotEnvErr.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("config error", slog.String("err", err.Error()))
		os.Exit(1)
	}
	if cfg.APIKey == "" {
		log.Warn("PROXY_API_KEY is empty, /api/report is unauthenticated")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewRecorder(reg)

	cl := ingest.NewClient(cfg.UpstreamURL, cfg.UpstreamToken, cfg.HTTPTimeout)
	etl := ingest.NewETL(cl, log, rec)

	r := httpx.NewRouter(log, etl, rec, httpx.Options{
		APIKey:           cfg.APIKey,
		AllowOrigin:      cfg.AllowOrigin,
		DefaultRangeDays: cfg.DefaultRangeDays,
		Gatherer:         reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info("shutting down", slog.String("signal", s.String()))
	case err := <-errCh:
		log.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", slog.String("err", err.Error()))
	}
}
