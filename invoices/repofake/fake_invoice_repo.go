package invoicerepofake

import (
	"sort"
	"sync"

	"github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/invoices"
)

var _ invoices.Repo = (*FakeInvoiceRepo)(nil)

type FakeInvoiceRepo struct {
	records map[string]*invoices.Invoice // keyed by invoice ID
	lock    sync.RWMutex
}

func NewFakeInvoiceRepo() *FakeInvoiceRepo {
	return &FakeInvoiceRepo{
		records: make(map[string]*invoices.Invoice),
	}
}

func (ir *FakeInvoiceRepo) List(tenantID string) ([]*invoices.Invoice, error) {
	ir.lock.RLock()
	defer ir.lock.RUnlock()

	result := make([]*invoices.Invoice, 0)
	for _, inv := range ir.records {
		if inv.TenantID == tenantID {
			copied := *inv
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (ir *FakeInvoiceRepo) Get(tenantID, id string) (*invoices.Invoice, error) {
	ir.lock.RLock()
	defer ir.lock.RUnlock()

	inv, ok := ir.records[id]
	if !ok || inv.TenantID != tenantID {
		return nil, errors.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (ir *FakeInvoiceRepo) Create(invoice *invoices.Invoice) error {
	ir.lock.Lock()
	defer ir.lock.Unlock()

	stored := *invoice
	ir.records[invoice.ID] = &stored
	return nil
}

func (ir *FakeInvoiceRepo) Update(invoice *invoices.Invoice) error {
	ir.lock.Lock()
	defer ir.lock.Unlock()

	existing, ok := ir.records[invoice.ID]
	if !ok || existing.TenantID != invoice.TenantID {
		return errors.ErrNotFound
	}
	stored := *invoice
	stored.CreatedAt = existing.CreatedAt
	ir.records[invoice.ID] = &stored
	return nil
}

func (ir *FakeInvoiceRepo) Delete(tenantID, id string) error {
	ir.lock.Lock()
	defer ir.lock.Unlock()

	inv, ok := ir.records[id]
	if !ok || inv.TenantID != tenantID {
		return errors.ErrNotFound
	}
	delete(ir.records, id)
	return nil
}
