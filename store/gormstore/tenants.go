package gormstore

import (
	"fmt"

	"github.com/invoiceslite/go-invoices-server/roles"
	"github.com/invoiceslite/go-invoices-server/tenants"
	"gorm.io/gorm"
)

type tenantRepo struct {
	db *gorm.DB
}

var _ tenants.Repo = (*tenantRepo)(nil)

func (r *tenantRepo) Create(tenant *tenants.Tenant) error {
	record := tenantRecord{ID: tenant.ID, Name: tenant.Name, Slug: tenant.Slug}
	if err := r.db.Create(&record).Error; err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("tenant slug %q already taken", tenant.Slug)
		}
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

func (r *tenantRepo) Get(tenantID string) (*tenants.Tenant, error) {
	var record tenantRecord
	if err := r.db.Where("id = ?", tenantID).First(&record).Error; err != nil {
		return nil, mapNotFound(err, "get tenant")
	}
	return record.toTenant(), nil
}

func (r *tenantRepo) GetBySlug(slug string) (*tenants.Tenant, error) {
	var record tenantRecord
	if err := r.db.Where("slug = ?", slug).First(&record).Error; err != nil {
		return nil, mapNotFound(err, "get tenant by slug")
	}
	return record.toTenant(), nil
}

func (rec *tenantRecord) toTenant() *tenants.Tenant {
	return &tenants.Tenant{ID: rec.ID, Name: rec.Name, Slug: rec.Slug}
}

type membershipRepo struct {
	db *gorm.DB
}

var _ tenants.MembershipRepo = (*membershipRepo)(nil)

func (r *membershipRepo) Create(membership *tenants.Membership) error {
	record := membershipRecord{
		UserID:   membership.UserID,
		TenantID: membership.TenantID,
		Role:     membership.Role.String(),
	}
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

func (r *membershipRepo) Get(userID, tenantID string) (*tenants.Membership, error) {
	var record membershipRecord
	if err := r.db.Where("user_id = ? AND tenant_id = ?", userID, tenantID).First(&record).Error; err != nil {
		return nil, mapNotFound(err, "get membership")
	}
	return record.toMembership()
}

func (r *membershipRepo) FirstForUser(userID string) (*tenants.Membership, error) {
	var record membershipRecord
	if err := r.db.Where("user_id = ?", userID).Order("created_at asc").First(&record).Error; err != nil {
		return nil, mapNotFound(err, "first membership for user")
	}
	return record.toMembership()
}

func (rec *membershipRecord) toMembership() (*tenants.Membership, error) {
	role, err := roles.Parse(rec.Role)
	if err != nil {
		return nil, fmt.Errorf("membership %s/%s: %w", rec.UserID, rec.TenantID, err)
	}
	return &tenants.Membership{
		UserID:   rec.UserID,
		TenantID: rec.TenantID,
		Role:     role,
	}, nil
}
