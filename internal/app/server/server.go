package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"yookassa-bridge/internal/app/server/handlers"
	"yookassa-bridge/internal/app/services"
	"yookassa-bridge/internal/config"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	cfg        *config.Config
	router     *chi.Mux
	handlers   *handlers.Handlers
	httpServer *http.Server
}

func NewServer(cfg *config.Config, paymentService *services.PaymentService, notifier *services.Notifier) *Server {
	srv := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		handlers: handlers.NewHandlers(paymentService, notifier),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.router.Post("/payments", s.handlers.CreatePayment)
	s.router.Post("/webhooks/yookassa", s.handlers.HandleWebhook)
	s.router.Get("/healthz", s.handlers.Health)
}

func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests,
// webhook fan-outs included, to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router exposes the request handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
