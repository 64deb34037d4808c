// Package http assembles the service's HTTP surface: the router, the
// per-request authorization guard, and the single error-classification
// boundary every failure passes through before a response is written.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/buysimply/buysimply/auth"
	"github.com/buysimply/buysimply/auth/revocation"
	"github.com/buysimply/buysimply/auth/token"
	"github.com/buysimply/buysimply/loan"
	"github.com/buysimply/buysimply/logger"
	"github.com/buysimply/buysimply/route"
)

// TokenVerifier resolves a bearer token to its principal. Satisfied by both
// the raw codec and the verifying cache.
type TokenVerifier interface {
	Verify(tokenString string) (token.Principal, error)
}

// HandlerProperties contains configuration for the HTTP handler
type HandlerProperties struct {
	AuthService *auth.Service
	LoanService *loan.Service
	Verifier    TokenVerifier
	Revocations *revocation.Store
	Routes      *route.Registry
	Logger      logger.Logger

	// Environment is "production" or "development"; it controls failure
	// logging and stack-trace exposure.
	Environment string

	// Throttle enables per-client rate limiting when non-nil.
	Throttle *ThrottleConfig
}

type handlers struct {
	authService *auth.Service
	loanService *loan.Service
	verifier    TokenVerifier
	revocations *revocation.Store
	routes      *route.Registry
	logger      logger.Logger
	environment string
}

// handlerFunc is the shape of every endpoint handler. A returned error is
// handed to the classifier; handlers never write failure responses
// themselves.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler creates and returns the main HTTP handler. Every endpoint is
// registered in the route metadata registry here, during startup wiring;
// the registry is sealed before the handler is returned.
func Handler(props *HandlerProperties) http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RealIP)
	mux.Use(middleware.RequestID)

	h := &handlers{
		authService: props.AuthService,
		loanService: props.LoanService,
		verifier:    props.Verifier,
		revocations: props.Revocations,
		routes:      props.Routes,
		logger:      props.Logger,
		environment: props.Environment,
	}

	mux.Use(h.recoverer)
	if props.Throttle != nil {
		mux.Use(h.throttle(props.Throttle))
	}

	h.route(mux, http.MethodPost, "/auth/login", route.Metadata{Public: true}, h.handleLogin)
	h.route(mux, http.MethodGet, "/auth/logout", route.Metadata{}, h.handleLogout)

	h.route(mux, http.MethodGet, "/loans", route.Metadata{}, h.handleGetAllLoans)
	h.route(mux, http.MethodGet, "/loans/expired", route.Metadata{}, h.handleGetExpiredLoans)
	h.route(mux, http.MethodGet, "/loans/{userEmail}/get", route.Metadata{}, h.handleGetUserLoans)
	h.route(mux, http.MethodDelete, "/loans/{loanId}/delete",
		route.Metadata{Roles: []string{loan.RoleSuperAdmin}}, h.handleDeleteLoan)

	props.Routes.Seal()

	return mux
}

// route registers an endpoint's access policy and mounts its handler behind
// the guard. The endpoint identity is "METHOD /pattern"; registering the
// same identity twice panics, which makes a duplicate route fatal at
// startup rather than at request time.
func (h *handlers) route(mux chi.Router, method, pattern string, meta route.Metadata, fn handlerFunc) {
	endpointID := method + " " + pattern
	h.routes.MustRegister(endpointID, meta)
	mux.Method(method, pattern, h.guarded(endpointID, fn))
}

// recoverer converts panics into unclassified failures routed through the
// classifier, so even a panicking handler responds with the uniform
// envelope.
func (h *handlers) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.respondFault(w, r, recoveredError(rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
