package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/food-punch-karachi/server/internal/agent/graph/conversations"
	"github.com/food-punch-karachi/server/internal/agent/model"
	"github.com/food-punch-karachi/server/internal/shop/cart"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

// Relay performs a single stateless completion. graph.Runner satisfies it.
type Relay interface {
	CompleteOnce(ctx context.Context, history []model.Turn) (*model.Completion, error)
}

// Server is the site's HTTP API.
type Server struct {
	cfg     Config
	catalog *catalog.Catalog
	carts   cart.Store
	chat    *conversations.MessagesManager
	relay   Relay
	limiter *sessionLimiter

	httpServer *http.Server
}

// New creates the API server.
func New(cfg Config, cat *catalog.Catalog, carts cart.Store, chat *conversations.MessagesManager, relay Relay) *Server {
	return &Server{
		cfg:     cfg,
		catalog: cat,
		carts:   carts,
		chat:    chat,
		relay:   relay,
		limiter: newSessionLimiter(cfg.ChatRatePerMinute, cfg.ChatRateBurst),
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return withMiddleware(mux, s.cfg.AllowedOrigins)
}

// Start listens on the configured address and blocks until ctx is cancelled
// or the server fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	go func() {
		<-ctx.Done()
		logx.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			logx.Warn().Err(err).Msg("http server shutdown")
		}
	}()

	logx.Info().Str("addr", ln.Addr().String()).Msg("http server ready")
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
