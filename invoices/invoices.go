package invoices

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusDraft Status = "DRAFT"
	StatusSent  Status = "SENT"
	StatusPaid  Status = "PAID"
	StatusVoid  Status = "VOID"
)

// ParseStatus validates an invoice status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusSent, StatusPaid, StatusVoid:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown invoice status %q", s)
}

type Invoice struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	CustomerID string     `json:"customer_id"`
	Number     string     `json:"number"`
	Amount     float64    `json:"amount"`
	Currency   string     `json:"currency"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Repo is tenant-scoped in the same way as customers.Repo: cross-tenant
// access surfaces as errors.ErrNotFound.
type Repo interface {
	List(tenantID string) ([]*Invoice, error)
	Get(tenantID, id string) (*Invoice, error)
	Create(invoice *Invoice) error
	Update(invoice *Invoice) error
	Delete(tenantID, id string) error
}
