package gormstore

import "time"

type userRecord struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

type tenantRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Slug      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (tenantRecord) TableName() string { return "tenants" }

type membershipRecord struct {
	UserID    string `gorm:"primaryKey"`
	TenantID  string `gorm:"primaryKey"`
	Role      string `gorm:"not null"`
	CreatedAt time.Time
}

func (membershipRecord) TableName() string { return "memberships" }

type customerRecord struct {
	ID        string `gorm:"primaryKey"`
	TenantID  string `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	Email     string
	CreatedAt time.Time
}

func (customerRecord) TableName() string { return "customers" }

type invoiceRecord struct {
	ID         string `gorm:"primaryKey"`
	TenantID   string `gorm:"index;not null"`
	CustomerID string `gorm:"index;not null"`
	Number     string `gorm:"not null"`
	Amount     float64
	Currency   string
	IssueDate  time.Time
	DueDate    *time.Time
	Status     string
	CreatedAt  time.Time
}

func (invoiceRecord) TableName() string { return "invoices" }
