package tenants

import "github.com/invoiceslite/go-invoices-server/roles"

// Membership links one user to one tenant with exactly one role.
// A user may hold several memberships, one per tenant, each independent.
type Membership struct {
	UserID   string     `json:"user_id"`
	TenantID string     `json:"tenant_id"`
	Role     roles.Role `json:"role"`
}
