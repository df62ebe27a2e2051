package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Complexlity/paywithglide/internal/auth"
	"github.com/Complexlity/paywithglide/internal/config"
	httphandler "github.com/Complexlity/paywithglide/internal/http"
	"github.com/Complexlity/paywithglide/internal/http/handlers"
	"github.com/Complexlity/paywithglide/internal/httpx"
	"github.com/Complexlity/paywithglide/internal/identity"
	"github.com/Complexlity/paywithglide/internal/logging"
	"github.com/Complexlity/paywithglide/internal/metrics"
	"github.com/Complexlity/paywithglide/internal/middleware"
	"github.com/Complexlity/paywithglide/internal/payment"
	"github.com/Complexlity/paywithglide/internal/registry"
	"github.com/Complexlity/paywithglide/internal/render"
	"github.com/Complexlity/paywithglide/internal/settlement"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// Env vars override values from .env
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	var (
		rec      metrics.Recorder = metrics.NoopRecorder{}
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.NewPrometheusRecorder(reg)
		gatherer = reg
	}

	reg, err := registry.New(registry.DefaultTable())
	if err != nil {
		return err
	}
	destination, ok := reg.Chain(cfg.DestinationChain)
	if !ok {
		return errors.New("unknown DESTINATION_CHAIN " + cfg.DestinationChain)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	neynar := identity.NewNeynarClient(cfg.NeynarBaseURL, cfg.NeynarAPIKey,
		httpx.WithHTTPClient(httpClient),
		httpx.WithPolicy(httpx.Policy{
			MaxAttempts: cfg.IdentityRetryAttempts,
			BaseDelay:   cfg.IdentityRetryBaseDelay,
		}),
		httpx.WithLogger(logger),
		httpx.WithMetrics(rec),
	)
	users := identity.NewResolver(neynar, identity.NewCache(cfg.IdentityCacheSize, cfg.IdentityCacheTTL), logger, rec)

	glide := settlement.NewGlideClient(cfg.GlideBaseURL, cfg.GlideProjectID,
		httpx.WithHTTPClient(httpClient),
		httpx.WithLogger(logger),
		httpx.WithMetrics(rec),
	)

	frames := handlers.NewFrameHandler(handlers.FrameDeps{
		Users:    users,
		Registry: reg,
		Sessions: payment.NewOrchestrator(glide, destination, logger, rec),
		Handoff:  payment.NewHandoff(glide),
		Poller:   payment.NewPoller(glide, logger, rec),
		Logger:   logger,
	}, handlers.FrameConfig{
		BaseURL:         cfg.FrameURL(""),
		ExplorerTxURL:   cfg.ExplorerTxURL,
		ShareURL:        cfg.ShareURL,
		MaxPollFailures: cfg.MaxPollFailures,
	})
	images := handlers.NewImageHandler(users, render.NewRenderer(cfg.PublicURL+"/public"), destination, logger)

	var verifier middleware.MessageVerifier
	switch cfg.FrameVerify {
	case "neynar":
		verifier = neynar
	case "jwt":
		verifier = auth.NewJWTService(cfg.FrameVerifySecret)
		logger.Warn("frame messages verified as local interactor tokens, not for production")
	default:
		logger.Warn("FRAME_VERIFY=none, frame messages are not verified")
	}

	limiter := middleware.NewRateLimiter(cfg.SearchRateWindow, cfg.SearchRateLimit)
	defer limiter.Close()

	router := httphandler.NewRouter(httphandler.RouterDeps{
		BasePath: cfg.BasePath,
		Frames:   frames,
		Images:   images,
		Verifier: verifier,
		Limiter:  limiter,
		Gatherer: gatherer,
		Logger:   logger,
	})

	// Create HTTP server with timeouts. Writes must outlive the identity retry schedule.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("frame_url", cfg.FrameURL("")),
			zap.String("destination_chain", destination.ID),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
