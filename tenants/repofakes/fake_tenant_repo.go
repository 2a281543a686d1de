package tenantrepofakes

import (
	"fmt"
	"sync"

	"github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

type FakeTenantRepo struct {
	byID   map[string]*tenants.Tenant
	bySlug map[string]string // slug to tenant ID
	lock   sync.RWMutex
}

func NewFakeTenantRepo() *FakeTenantRepo {
	return &FakeTenantRepo{
		byID:   make(map[string]*tenants.Tenant),
		bySlug: make(map[string]string),
	}
}

func (tr *FakeTenantRepo) Create(tenant *tenants.Tenant) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.bySlug[tenant.Slug]; ok {
		return fmt.Errorf("slug %q already taken", tenant.Slug)
	}

	stored := *tenant
	tr.byID[tenant.ID] = &stored
	tr.bySlug[tenant.Slug] = tenant.ID
	return nil
}

func (tr *FakeTenantRepo) Get(tenantID string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	tenant, ok := tr.byID[tenantID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *tenant
	return &copied, nil
}

func (tr *FakeTenantRepo) GetBySlug(slug string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	id, ok := tr.bySlug[slug]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *tr.byID[id]
	return &copied, nil
}
