package server

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/roles"
	"github.com/invoiceslite/go-invoices-server/tenancy"
	"github.com/invoiceslite/go-invoices-server/token"
	"github.com/pkg/errors"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the validated access claims
	ContextKeyClaims ContextKey = "claims"
)

// claimsFrom returns the validated access claims attached by RequireAccess.
func claimsFrom(ctx context.Context) (*token.AccessClaims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*token.AccessClaims)
	return claims, ok
}

// WithTenant resolves the tenant slug from the request signals before any
// other core logic runs and attaches it to the context.
func (s *Server) WithTenant() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			slug, err := tenancy.Resolve(tenancy.FromRequest(r))
			if err != nil {
				writeError(w, r, err)
				return
			}
			next(w, r.WithContext(tenancy.WithSlug(r.Context(), slug)))
		}
	}
}

// RequireAccess validates the access token from the access cookie, falling
// back to an Authorization Bearer header, and injects the claims into the
// request context. Validation is stateless: signature and expiry only.
func (s *Server) RequireAccess() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rawToken := accessTokenFrom(r)
			if rawToken == "" {
				writeError(w, r, apperrors.Wrapf(apperrors.ErrUnauthenticated, "missing access token"))
				return
			}

			claims, err := s.tokens.ValidateAccess(rawToken)
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole allows the request through when the caller's role ordinal is
// at or above any of the required roles. Runs after RequireAccess.
func (s *Server) RequireRole(required ...roles.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFrom(r.Context())
			if !ok {
				writeError(w, r, apperrors.Wrapf(apperrors.ErrUnauthenticated, "no claims in context"))
				return
			}
			if !roles.Allowed(required, claims.Role) {
				writeError(w, r, errors.Wrapf(apperrors.ErrForbidden, "role %s below required", claims.Role))
				return
			}
			next(w, r)
		}
	}
}

// chain applies middleware left to right, so the first listed runs first.
func chain(handler http.HandlerFunc, middleware ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}

func accessTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie(accessCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func refreshTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
