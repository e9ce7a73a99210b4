package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-contacts-server/auth"
	"github.com/jrsteele09/go-contacts-server/contacts"
	"github.com/jrsteele09/go-contacts-server/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const devEnv = "DEV"

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	handler  http.Handler // mux wrapped in the server wide middleware
	routes   []string
	config   config.Config
	auth     *auth.AuthService
	contacts *contacts.Service
}

func New(config config.Config, authService *auth.AuthService, contactService *contacts.Service) (*Server, error) {
	if config == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if authService == nil {
		return nil, errors.New("[Server New] auth service is required")
	}
	if contactService == nil {
		return nil, errors.New("[Server New] contact service is required")
	}

	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		auth:     authService,
		contacts: contactService,
	}

	s.initRoutes()
	s.logRoutes()

	// CORS sits outside the mux so preflight requests are answered for every path
	s.handler = ChainMiddleware(s.mux.ServeHTTP, s.ServerMiddleware()...)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes returns the registered patterns in registration order
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != devEnv {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if colour, ok := methodColors[method]; ok {
		return colour + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
