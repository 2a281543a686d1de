package gormstore

import (
	"fmt"

	"github.com/invoiceslite/go-invoices-server/customers"
	"github.com/invoiceslite/go-invoices-server/internal/errors"
	"gorm.io/gorm"
)

type customerRepo struct {
	db *gorm.DB
}

var _ customers.Repo = (*customerRepo)(nil)

func (r *customerRepo) List(tenantID string) ([]*customers.Customer, error) {
	var records []customerRecord
	if err := r.db.Where("tenant_id = ?", tenantID).Order("created_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	result := make([]*customers.Customer, 0, len(records))
	for i := range records {
		result = append(result, records[i].toCustomer())
	}
	return result, nil
}

func (r *customerRepo) Get(tenantID, id string) (*customers.Customer, error) {
	var record customerRecord
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&record).Error; err != nil {
		return nil, mapNotFound(err, "get customer")
	}
	return record.toCustomer(), nil
}

func (r *customerRepo) Create(customer *customers.Customer) error {
	record := customerRecord{
		ID:        customer.ID,
		TenantID:  customer.TenantID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
	}
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (r *customerRepo) Update(customer *customers.Customer) error {
	result := r.db.Model(&customerRecord{}).
		Where("id = ? AND tenant_id = ?", customer.ID, customer.TenantID).
		Updates(map[string]any{"name": customer.Name, "email": customer.Email})
	if result.Error != nil {
		return fmt.Errorf("update customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *customerRepo) Delete(tenantID, id string) error {
	result := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&customerRecord{})
	if result.Error != nil {
		return fmt.Errorf("delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (rec *customerRecord) toCustomer() *customers.Customer {
	return &customers.Customer{
		ID:        rec.ID,
		TenantID:  rec.TenantID,
		Name:      rec.Name,
		Email:     rec.Email,
		CreatedAt: rec.CreatedAt,
	}
}
