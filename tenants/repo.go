package tenants

type Repo interface {
	Create(tenant *Tenant) error
	Get(tenantID string) (*Tenant, error)
	GetBySlug(slug string) (*Tenant, error)
}

// MembershipRepo stores user/tenant/role links. FirstForUser returns the
// oldest membership, used as the active tenant when logging in without an
// explicit choice.
type MembershipRepo interface {
	Create(membership *Membership) error
	Get(userID, tenantID string) (*Membership, error)
	FirstForUser(userID string) (*Membership, error)
}
