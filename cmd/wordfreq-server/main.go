// Command wordfreq-server exposes word counting as a JSON API with
// server-side sessions, for browser front ends.
//
// Endpoints:
//
//	POST   /api/count                       body: {"text":"...","hide_singletons":false}
//	POST   /api/sessions
//	GET    /api/sessions/{id}
//	POST   /api/sessions/{id}/count         body: {"text":"..."}
//	POST   /api/sessions/{id}/toggle
//	GET    /api/sessions/{id}/export.csv
//	DELETE /api/sessions/{id}
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/wordfreq/internal/logging"
	"github.com/cognicore/wordfreq/pkg/wordfreq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/bootstrap"
	"github.com/cognicore/wordfreq/pkg/wordfreq/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (default $WORDFREQ_CONFIG)")
		addr       = flag.String("addr", "", "Listen address (overrides server.addr)")
		offline    = flag.Bool("offline", false, "Do not fetch missing lexical resources")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, *offline, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func serve(ctx context.Context, cfg *config.Config, offline bool, logger *zap.Logger) error {
	if !offline {
		report, err := bootstrap.Ensure(ctx, bootstrap.Options{
			DataDir: cfg.DataDir,
			Remote:  cfg.Remote,
			Timeout: cfg.FetchTimeout,
			Logger:  logger,
		})
		if err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
		if len(report.Fetched) > 0 {
			logger.Info("resources installed", zap.Strings("fetched", report.Fetched))
		}
	}

	logger.Info("loading resources", zap.String("data_dir", cfg.DataDir))
	counter, err := wordfreq.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer counter.Close()

	srv := newServer(counter, logger)
	if ttl := cfg.Server.SessionTTL; ttl > 0 {
		go expireSessions(ctx, srv, ttl)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.routes(cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// expireSessions drops idle sessions until ctx is done.
func expireSessions(ctx context.Context, srv *server, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := srv.sessions.Expire(ttl); n > 0 {
				srv.logger.Debug("expired sessions", zap.Int("count", n))
			}
		}
	}
}
