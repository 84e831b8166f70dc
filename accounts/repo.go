package accounts

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repo is the credential store. Implementations must treat Email as unique and
// must never mutate the security fields of an existing account; UpdateProfile
// is limited to Name and Email on purpose.
type Repo interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	UpdateProfile(ctx context.Context, id, name, email string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*Account, error)
}
