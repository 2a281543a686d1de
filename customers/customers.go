package customers

import "time"

type Customer struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repo is tenant-scoped: every operation filters by tenant id in the query
// itself, so a record belonging to another tenant is indistinguishable from
// a missing one (errors.ErrNotFound).
type Repo interface {
	List(tenantID string) ([]*Customer, error)
	Get(tenantID, id string) (*Customer, error)
	Create(customer *Customer) error
	Update(customer *Customer) error
	Delete(tenantID, id string) error
}
