// Package server exposes the Telegram authentication HTTP API and the
// Mini-App pages.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/TG-Note-App/tgauth/internal/archive"
	"github.com/TG-Note-App/tgauth/internal/initdata"
	"github.com/TG-Note-App/tgauth/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// UserStore persists authenticated users.
type UserStore interface {
	SaveOrUpdate(ctx context.Context, data *initdata.User) (*storage.User, error)
}

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options are the HTTP level settings.
type Options struct {
	ListenAddr     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	StaticDir      string
}

// Server wires handlers to their dependencies.
type Server struct {
	opts      Options
	validator *initdata.Validator
	users     UserStore
	health    Pinger
	archive   archive.Recorder
	now       func() time.Time
	router    *mux.Router
}

// New builds the router. A nil recorder disables archiving.
func New(opts Options, v *initdata.Validator, users UserStore, health Pinger, rec archive.Recorder) *Server {
	if rec == nil {
		rec = archive.Nop{}
	}
	s := &Server{
		opts:      opts,
		validator: v,
		users:     users,
		health:    health,
		archive:   rec,
		now:       time.Now,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler {
	return requestLogger(recoverer(cors(s.opts.AllowedOrigins)(s.router)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server started", "addr", s.opts.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
