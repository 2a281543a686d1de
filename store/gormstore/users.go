package gormstore

import (
	stderrors "errors"
	"fmt"

	"github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/users"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

var _ users.UserRepo = (*userRepo)(nil)

func (r *userRepo) Create(user *users.User) error {
	record := userRecord{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.DateJoined,
	}
	if err := r.db.Create(&record).Error; err != nil {
		if isUniqueConstraintError(err) {
			return errors.ErrEmailAlreadyInUse
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(id string) (*users.User, error) {
	var record userRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, mapNotFound(err, "get user by id")
	}
	return record.toUser(), nil
}

func (r *userRepo) GetByEmail(email string) (*users.User, error) {
	var record userRecord
	if err := r.db.Where("email = ?", email).First(&record).Error; err != nil {
		return nil, mapNotFound(err, "get user by email")
	}
	return record.toUser(), nil
}

func (rec *userRecord) toUser() *users.User {
	return &users.User{
		ID:           rec.ID,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		DateJoined:   rec.CreatedAt,
	}
}

func mapNotFound(err error, op string) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
