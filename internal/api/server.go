package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stakelab-io/staking-pool-engine/internal/config"
	"github.com/stakelab-io/staking-pool-engine/internal/observability/tracing"
	"github.com/stakelab-io/staking-pool-engine/internal/services"
)

// Server is the public HTTP surface of the staking engine. All routes
// delegate to the service layer; the server only translates between
// JSON and domain types.
type Server struct {
	httpServer *http.Server
	svc        *services.Service
}

func New(cfg *config.ServerConfig, svc *services.Service) *Server {
	srv := &Server{svc: svc}
	srv.httpServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      srv.Router(),
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return srv
}

// Router builds the route tree. Exposed separately so tests can drive
// handlers without binding a port.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(traceMiddleware)

	r.Get("/healthcheck", s.handleHealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/stake-pools", s.handleCreateStakePool)
		r.Route("/stake-pools/{poolID}", func(r chi.Router) {
			r.Get("/", s.handleGetStakePool)
			r.Get("/exists", s.handleStakePoolExists)
			r.Get("/stakes", s.handleListStakes)
			r.Get("/stakes/count", s.handleCountStakes)
			r.Get("/reward-quote", s.handleRewardQuote)
			r.Get("/rewards", s.handleUserRewards)
		})
		r.Post("/stakes", s.handleCreateStake)
		r.Post("/claims", s.handleClaim)
		r.Get("/custody", s.handleCustodyBalance)
	})

	return r
}

func (s *Server) Start() error {
	log.Info().Str("address", s.httpServer.Addr).Msg("starting staking engine server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// traceMiddleware gives every request a trace id carried through the
// request-scoped logger.
func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.InjectTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
