package server

import (
	"net/http"
	"net/mail"
	"strings"

	apperrors "github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/tenancy"
	"github.com/invoiceslite/go-invoices-server/tenants"
	"github.com/invoiceslite/go-invoices-server/users"
	"github.com/rs/zerolog/log"
)

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	TenantName string `json:"tenantName"`
	Slug       string `json:"slug"`
}

func (req *registerRequest) validate() string {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "invalid email"
	}
	if err := users.ValidatePasswordStrength(req.Password); err != nil {
		return err.Error()
	}
	if strings.TrimSpace(req.TenantName) == "" {
		return "tenantName is required"
	}
	if err := tenants.ValidateSlug(req.Slug); err != nil {
		return err.Error()
	}
	return ""
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{OK: false, Error: msg})
		return
	}

	result, err := s.auth.Register(r.Context(), req.Email, req.Password, req.TenantName, req.Slug)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", result.User.ID).Str("tenant", result.Tenant.Slug).Msg("user registered")
	s.setAuthCookies(w, result.Tokens)
	writeJSON(w, http.StatusCreated, map[string]any{
		"ok": true,
		"user": map[string]string{
			"id":    result.User.ID,
			"email": result.User.Email,
		},
		"tenant": result.Tenant,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{OK: false, Error: "email and password are required"})
		return
	}

	result, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", result.UserID).Str("tenant_id", result.TenantID).Msg("user logged in")
	s.setAuthCookies(w, result.Tokens)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"userId":   result.UserID,
		"tenantId": result.TenantID,
		"role":     result.Role,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	rawToken := refreshTokenFrom(r)
	if rawToken == "" {
		writeError(w, r, apperrors.Wrapf(apperrors.ErrUnauthenticated, "missing refresh token"))
		return
	}

	pair, err := s.auth.Refresh(r.Context(), rawToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	rawToken := refreshTokenFrom(r)
	if rawToken == "" {
		writeError(w, r, apperrors.Wrapf(apperrors.ErrUnauthenticated, "missing refresh token"))
		return
	}

	if err := s.auth.Logout(r.Context(), rawToken); err != nil {
		writeError(w, r, err)
		return
	}

	s.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.Wrapf(apperrors.ErrUnauthenticated, "no claims in context"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": claims})
}

// handleCurrentTenant looks up the tenant behind the resolved slug. This is
// the one place the slug is translated to a tenant record; authenticated
// data access relies on the tenant id in the claims instead.
func (s *Server) handleCurrentTenant(w http.ResponseWriter, r *http.Request) {
	slug, ok := tenancy.SlugFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrTenantUnresolved)
		return
	}
	tenant, err := s.repos.Tenants.GetBySlug(slug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "tenant": tenant})
}
