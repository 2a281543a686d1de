package users

// UserRepo is the credential-store view of users. Emails are unique; Create
// must fail with errors.ErrEmailAlreadyInUse on a duplicate, and lookups
// return errors.ErrNotFound for missing users.
type UserRepo interface {
	Create(user *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
}
