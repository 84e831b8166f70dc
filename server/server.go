package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pictlock/go-mfa-server/auth"
	"github.com/pictlock/go-mfa-server/feedback"
	"github.com/pictlock/go-mfa-server/internal/config"
	"github.com/pictlock/go-mfa-server/sessions"
)

// Server routes the JSON API over the stage-gate auth service.
type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	auth     *auth.Service
	repos    auth.Repos
	issuer   *sessions.Issuer
	feedback feedback.Repo
}

func New(cfg config.Config, repos auth.Repos, issuer *sessions.Issuer, feedbackRepo feedback.Repo) (*Server, error) {
	authService, err := auth.NewService(repos, issuer, auth.WithAttemptTTL(cfg.GetAttemptTTL()))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		repos:    repos,
		auth:     authService,
		issuer:   issuer,
		feedback: feedbackRepo,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Info().Str("path", parts[0]).Msg("route")
		}
	}
}
