// Package api exposes the prediction engine and its data-provider
// collaborators over HTTP. Validation always runs before computation; the
// core never sees an unvalidated payload.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/cfb-edge/internal/config"
	"github.com/yourusername/cfb-edge/internal/datasource"
	"github.com/yourusername/cfb-edge/internal/engine"
	"github.com/yourusername/cfb-edge/internal/logger"
	"github.com/yourusername/cfb-edge/internal/validation"
)

// Providers bundles the optional data collaborators. Any of them may be nil;
// the matching endpoints then answer 503 instead of reaching out.
type Providers struct {
	Team    datasource.TeamProvider
	Lines   datasource.LinesProvider
	Matchup datasource.MatchupProvider
	Ratings datasource.PowerRatingsProvider
	Weather datasource.WeatherProvider
}

// Server is the public HTTP API.
type Server struct {
	cfg       *config.Config
	log       *logrus.Logger
	modelLog  *logger.ModelLogger
	engine    *engine.SpreadModel
	validator validation.Validator
	providers Providers
	server    *http.Server
}

// NewServer wires the router and handlers.
func NewServer(cfg *config.Config, log *logrus.Logger, model *engine.SpreadModel, v validation.Validator, providers Providers) *Server {
	s := &Server{
		cfg:       cfg,
		log:       log,
		modelLog:  logger.NewModelLogger(log),
		engine:    model,
		validator: v,
		providers: providers,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/cfb", func(r chi.Router) {
		r.Post("/run_model", s.handleRunModel)
		r.Get("/build_inputs", s.handleBuildInputs)
		r.Post("/build_inputs", s.handleBuildInputs)
		r.Get("/spread/edge", s.handleSpreadEdge)

		r.Get("/team", s.handleTeam)
		r.Get("/lines", s.handleLines)
		r.Get("/matchup", s.handleMatchup)
		r.Get("/power/massey", s.handleMassey)
		r.Get("/weather", s.handleWeather)
		r.Get("/weather/kickoff", s.handleWeatherKickoff)
		r.Get("/weather/hourly", s.handleWeatherHourly)
	})

	s.server = &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the configured router, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	s.log.WithField("addr", s.server.Addr).Info("API server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains connections within the configured timeout.
func (s *Server) Shutdown() error {
	timeout := time.Duration(s.cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.log.Info("API server shutting down")
	return s.server.Shutdown(ctx)
}
