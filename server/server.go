package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/invoiceslite/go-invoices-server/auth"
	"github.com/invoiceslite/go-invoices-server/customers"
	"github.com/invoiceslite/go-invoices-server/internal/config"
	"github.com/invoiceslite/go-invoices-server/invoices"
	"github.com/invoiceslite/go-invoices-server/tenants"
	"github.com/invoiceslite/go-invoices-server/token"
)

// Repos holds the business repositories the HTTP layer serves.
type Repos struct {
	Tenants   tenants.Repo
	Customers customers.Repo
	Invoices  invoices.Repo
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	auth   *auth.Service
	tokens *token.Service
	repos  Repos
}

func New(cfg config.Config, authService *auth.Service, tokenService *token.Service, repos Repos) (*Server, error) {
	if authService == nil {
		return nil, fmt.Errorf("[Server New] auth service is required")
	}
	if tokenService == nil {
		return nil, fmt.Errorf("[Server New] token service is required")
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		auth:   authService,
		tokens: tokenService,
		repos:  repos,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
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
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
