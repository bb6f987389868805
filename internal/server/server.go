// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shpitdev/air-assist/internal/recommend"
	"github.com/shpitdev/air-assist/internal/server/middleware"
)

// Recommender is the part of recommend.Pipeline the API needs.
type Recommender interface {
	Run(ctx context.Context, answers recommend.Answers) (recommend.Set, error)
}

// NewEngine builds the gin engine with routes registered.
func NewEngine(rec Recommender, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Logging(log), middleware.Recovery(log))

	registerRoutes(engine, &handlers{rec: rec})
	return engine
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http: listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	log.Info("http: shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
