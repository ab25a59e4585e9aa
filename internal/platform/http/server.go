package http

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/config"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Start serves handler until ctx is cancelled, then drains in-flight requests.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}
	logrus.WithField("addr", listener.Addr().String()).Info("✅ HTTP server listening")

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return fmt.Errorf("failed to shut down http server: %w", shutdownErr)
		}
		logrus.Info("HTTP server stopped")
		return nil
	case serveErr := <-errCh:
		return serveErr
	}
}
