package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/render"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

// Server exposes one game over HTTP. Every game handler holds mu, so requests are handled
// one at a time like events of a single UI thread.
type Server struct {
	logger   *slog.Logger
	renderer *render.Canvas
	surface  canvas.Surface

	mu      sync.Mutex
	session *usecase.Session

	mux *http.ServeMux
}

func New(logger *slog.Logger, session *usecase.Session, renderer *render.Canvas, surface canvas.Surface) *Server {
	server := &Server{
		logger:   logger.With("component", "rest"),
		renderer: renderer,
		surface:  surface,
		session:  session,
		mux:      http.NewServeMux(),
	}

	server.mux.HandleFunc("GET /ping", server.pingHandler)
	server.mux.HandleFunc("GET /{$}", server.pageHandler)
	server.mux.HandleFunc("GET /board.png", server.boardImageHandler)
	server.mux.HandleFunc("GET /click", server.clickHandler)
	server.mux.HandleFunc("POST /reset", server.resetPageHandler)
	server.mux.HandleFunc("GET /api/state", server.stateHandler)
	server.mux.HandleFunc("POST /api/move", server.moveHandler)
	server.mux.HandleFunc("POST /api/reset", server.resetHandler)
	server.mux.Handle("GET /metrics", promhttp.Handler())

	return server
}

func (that *Server) Handler() http.Handler {
	return that.mux
}

// Start - serves HTTP on port until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
