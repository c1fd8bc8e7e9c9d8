// Package app wires the process together: environment, logging pipeline,
// room registry, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"kitchen-rush/server/internal/game"
	servernet "kitchen-rush/server/internal/net"
	"kitchen-rush/server/internal/observability"
	"kitchen-rush/server/internal/telemetry"
	"kitchen-rush/server/logging"
	loggingSinks "kitchen-rush/server/logging/sinks"
)

// Config carries process-level settings resolved by the entrypoint.
type Config struct {
	Addr      string
	ClientDir string
	Logger    *log.Logger
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
		if port := os.Getenv("PORT"); port != "" {
			cfg.Addr = ":" + port
		}
	}

	// Missing .env is the normal case outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		cfg.Logger.Printf("skipping .env: %v", err)
	}

	obsCfg := observability.FromEnv()
	logCfg := obsCfg.LoggingConfig()

	sinks := map[string]logging.Sink{
		"console": loggingSinks.NewConsoleSink(os.Stdout, logCfg.Console),
		"memory":  loggingSinks.NewMemorySink(),
	}
	if logCfg.HasSink("json") {
		out := os.Stdout
		if logCfg.JSON.FilePath != "" {
			f, err := os.OpenFile(logCfg.JSON.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open json log: %w", err)
			}
			defer f.Close()
			out = f
		}
		sinks["json"] = loggingSinks.NewJSONSink(out, logCfg.JSON.FlushInterval)
	}

	router, err := logging.NewRouter(logCfg, logging.SystemClock{}, cfg.Logger, sinks)
	if err != nil {
		return fmt.Errorf("construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			cfg.Logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	metrics := &logging.Metrics{}
	registry := game.NewRegistry(game.Deps{
		Logger:    telemetry.WrapLogger(cfg.Logger),
		Publisher: logging.WithFields(router, map[string]any{"service": "kitchen-rush"}),
		Metrics:   telemetry.WrapMetrics(metrics),
	})
	defer registry.Shutdown()

	routes := servernet.NewRouter(servernet.RouterConfig{
		Registry:  registry,
		Metrics:   metrics,
		LogRouter: router,
		Logger:    telemetry.WrapLogger(cfg.Logger),
		ClientDir: cfg.ClientDir,
	})

	server := &nethttp.Server{
		Addr:    cfg.Addr,
		Handler: routes,
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.Logger.Printf("server listening on %s", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return err
	}
}
