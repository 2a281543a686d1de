package gormstore

import (
	"fmt"

	"github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/invoices"
	"gorm.io/gorm"
)

type invoiceRepo struct {
	db *gorm.DB
}

var _ invoices.Repo = (*invoiceRepo)(nil)

func (r *invoiceRepo) List(tenantID string) ([]*invoices.Invoice, error) {
	var records []invoiceRecord
	if err := r.db.Where("tenant_id = ?", tenantID).Order("created_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	result := make([]*invoices.Invoice, 0, len(records))
	for i := range records {
		inv, err := records[i].toInvoice()
		if err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	return result, nil
}

func (r *invoiceRepo) Get(tenantID, id string) (*invoices.Invoice, error) {
	var record invoiceRecord
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&record).Error; err != nil {
		return nil, mapNotFound(err, "get invoice")
	}
	return record.toInvoice()
}

func (r *invoiceRepo) Create(invoice *invoices.Invoice) error {
	record := toInvoiceRecord(invoice)
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepo) Update(invoice *invoices.Invoice) error {
	result := r.db.Model(&invoiceRecord{}).
		Where("id = ? AND tenant_id = ?", invoice.ID, invoice.TenantID).
		Updates(map[string]any{
			"customer_id": invoice.CustomerID,
			"number":      invoice.Number,
			"amount":      invoice.Amount,
			"currency":    invoice.Currency,
			"issue_date":  invoice.IssueDate,
			"due_date":    invoice.DueDate,
			"status":      string(invoice.Status),
		})
	if result.Error != nil {
		return fmt.Errorf("update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(tenantID, id string) error {
	result := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&invoiceRecord{})
	if result.Error != nil {
		return fmt.Errorf("delete invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func toInvoiceRecord(inv *invoices.Invoice) invoiceRecord {
	return invoiceRecord{
		ID:         inv.ID,
		TenantID:   inv.TenantID,
		CustomerID: inv.CustomerID,
		Number:     inv.Number,
		Amount:     inv.Amount,
		Currency:   inv.Currency,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		Status:     string(inv.Status),
		CreatedAt:  inv.CreatedAt,
	}
}

func (rec *invoiceRecord) toInvoice() (*invoices.Invoice, error) {
	status, err := invoices.ParseStatus(rec.Status)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", rec.ID, err)
	}
	return &invoices.Invoice{
		ID:         rec.ID,
		TenantID:   rec.TenantID,
		CustomerID: rec.CustomerID,
		Number:     rec.Number,
		Amount:     rec.Amount,
		Currency:   rec.Currency,
		IssueDate:  rec.IssueDate,
		DueDate:    rec.DueDate,
		Status:     status,
		CreatedAt:  rec.CreatedAt,
	}, nil
}
