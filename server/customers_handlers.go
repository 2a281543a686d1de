package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceslite/go-invoices-server/customers"
	apperrors "github.com/invoiceslite/go-invoices-server/internal/errors"
)

type customerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	list, err := s.repos.Customers.List(claims.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "customers": list})
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	customer, err := s.repos.Customers.Get(claims.TenantID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "customer": customer})
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{OK: false, Error: "name is required"})
		return
	}

	customer := &customers.Customer{
		ID:        uuid.New().String(),
		TenantID:  claims.TenantID,
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}
	if err := s.repos.Customers.Create(customer); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "customer": customer})
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer := &customers.Customer{
		ID:       r.PathValue("id"),
		TenantID: claims.TenantID,
		Name:     req.Name,
		Email:    req.Email,
	}
	if err := s.repos.Customers.Update(customer); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.repos.Customers.Get(claims.TenantID, customer.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "customer": updated})
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	if err := s.repos.Customers.Delete(claims.TenantID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
