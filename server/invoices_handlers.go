package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/invoices"
)

type invoiceRequest struct {
	CustomerID string  `json:"customerId"`
	Number     string  `json:"number"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	IssueDate  string  `json:"issueDate"`
	DueDate    *string `json:"dueDate"`
	Status     string  `json:"status"`
}

func (req *invoiceRequest) toInvoice(tenantID string) (*invoices.Invoice, string) {
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, "customerId is required"
	}
	if strings.TrimSpace(req.Number) == "" {
		return nil, "number is required"
	}

	issueDate, err := time.Parse(time.RFC3339, req.IssueDate)
	if err != nil {
		// Accept bare dates as well as full timestamps.
		issueDate, err = time.Parse("2006-01-02", req.IssueDate)
		if err != nil {
			return nil, "issueDate must be an ISO 8601 date"
		}
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				return nil, "dueDate must be an ISO 8601 date"
			}
		}
		dueDate = &parsed
	}

	status := invoices.StatusDraft
	if req.Status != "" {
		status, err = invoices.ParseStatus(req.Status)
		if err != nil {
			return nil, err.Error()
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}

	return &invoices.Invoice{
		TenantID:   tenantID,
		CustomerID: req.CustomerID,
		Number:     req.Number,
		Amount:     req.Amount,
		Currency:   currency,
		IssueDate:  issueDate,
		DueDate:    dueDate,
		Status:     status,
	}, ""
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	list, err := s.repos.Invoices.List(claims.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "invoices": list})
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	invoice, err := s.repos.Invoices.Get(claims.TenantID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "invoice": invoice})
}

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	var req invoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	invoice, msg := req.toInvoice(claims.TenantID)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{OK: false, Error: msg})
		return
	}

	invoice.ID = uuid.New().String()
	invoice.CreatedAt = time.Now()
	if err := s.repos.Invoices.Create(invoice); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "invoice": invoice})
}

func (s *Server) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	var req invoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	invoice, msg := req.toInvoice(claims.TenantID)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{OK: false, Error: msg})
		return
	}

	invoice.ID = r.PathValue("id")
	if err := s.repos.Invoices.Update(invoice); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.repos.Invoices.Get(claims.TenantID, invoice.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "invoice": updated})
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	if err := s.repos.Invoices.Delete(claims.TenantID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
