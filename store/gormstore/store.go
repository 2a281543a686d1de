// Package gormstore implements the credential and business repositories on
// PostgreSQL via GORM. Tenant scoping happens in the queries themselves so
// a record from another tenant reads as not found.
package gormstore

import (
	"fmt"
	"strings"

	"github.com/invoiceslite/go-invoices-server/customers"
	"github.com/invoiceslite/go-invoices-server/invoices"
	"github.com/invoiceslite/go-invoices-server/tenants"
	"github.com/invoiceslite/go-invoices-server/users"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gormstore open: %w", err)
	}
	if err := db.AutoMigrate(
		&userRecord{},
		&tenantRecord{},
		&membershipRecord{},
		&customerRecord{},
		&invoiceRecord{},
	); err != nil {
		return nil, fmt.Errorf("gormstore migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Users() users.UserRepo               { return &userRepo{db: s.db} }
func (s *Store) Tenants() tenants.Repo               { return &tenantRepo{db: s.db} }
func (s *Store) Memberships() tenants.MembershipRepo { return &membershipRepo{db: s.db} }
func (s *Store) Customers() customers.Repo           { return &customerRepo{db: s.db} }
func (s *Store) Invoices() invoices.Repo             { return &invoiceRepo{db: s.db} }

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
