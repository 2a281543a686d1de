package customerrepofake

import (
	"sort"
	"sync"

	"github.com/invoiceslite/go-invoices-server/customers"
	"github.com/invoiceslite/go-invoices-server/internal/errors"
)

var _ customers.Repo = (*FakeCustomerRepo)(nil)

type FakeCustomerRepo struct {
	records map[string]*customers.Customer // keyed by customer ID
	lock    sync.RWMutex
}

func NewFakeCustomerRepo() *FakeCustomerRepo {
	return &FakeCustomerRepo{
		records: make(map[string]*customers.Customer),
	}
}

func (cr *FakeCustomerRepo) List(tenantID string) ([]*customers.Customer, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	result := make([]*customers.Customer, 0)
	for _, c := range cr.records {
		if c.TenantID == tenantID {
			copied := *c
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (cr *FakeCustomerRepo) Get(tenantID, id string) (*customers.Customer, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	c, ok := cr.records[id]
	if !ok || c.TenantID != tenantID {
		return nil, errors.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (cr *FakeCustomerRepo) Create(customer *customers.Customer) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	stored := *customer
	cr.records[customer.ID] = &stored
	return nil
}

func (cr *FakeCustomerRepo) Update(customer *customers.Customer) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	existing, ok := cr.records[customer.ID]
	if !ok || existing.TenantID != customer.TenantID {
		return errors.ErrNotFound
	}
	stored := *customer
	stored.CreatedAt = existing.CreatedAt
	cr.records[customer.ID] = &stored
	return nil
}

func (cr *FakeCustomerRepo) Delete(tenantID, id string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	c, ok := cr.records[id]
	if !ok || c.TenantID != tenantID {
		return errors.ErrNotFound
	}
	delete(cr.records, id)
	return nil
}
