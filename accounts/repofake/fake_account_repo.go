package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pictlock/go-mfa-server/accounts"
)

var _ accounts.Repo = (*FakeAccountRepo)(nil)

// FakeAccountRepo is a thread-safe in-memory credential store, used by tests
// and by the server when no database is configured.
type FakeAccountRepo struct {
	lock     sync.RWMutex
	accounts map[string]*accounts.Account
	emailIds map[string]string // normalized email -> account id
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts: make(map[string]*accounts.Account),
		emailIds: make(map[string]string),
	}
}

func (r *FakeAccountRepo) Create(_ context.Context, account *accounts.Account) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	email := accounts.NormalizeEmail(account.Email)
	if _, exists := r.emailIds[email]; exists {
		return accounts.ErrDuplicateEmail
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.Email = email

	stored := *account
	r.accounts[stored.ID] = &stored
	r.emailIds[email] = stored.ID
	return nil
}

func (r *FakeAccountRepo) GetByEmail(_ context.Context, email string) (*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.emailIds[accounts.NormalizeEmail(email)]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return copyAccount(r.accounts[id]), nil
}

func (r *FakeAccountRepo) GetByID(_ context.Context, id string) (*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return copyAccount(account), nil
}

func (r *FakeAccountRepo) UpdateProfile(_ context.Context, id, name, email string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return accounts.ErrNotFound
	}

	normalized := accounts.NormalizeEmail(email)
	if existingID, taken := r.emailIds[normalized]; taken && existingID != id {
		return accounts.ErrDuplicateEmail
	}

	delete(r.emailIds, account.Email)
	account.Name = name
	account.Email = normalized
	r.emailIds[normalized] = id
	return nil
}

func (r *FakeAccountRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return accounts.ErrNotFound
	}
	delete(r.emailIds, account.Email)
	delete(r.accounts, id)
	return nil
}

func (r *FakeAccountRepo) List(_ context.Context, offset, limit int) ([]*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	all := make([]*accounts.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		all = append(all, copyAccount(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })

	if offset >= len(all) {
		return []*accounts.Account{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func copyAccount(a *accounts.Account) *accounts.Account {
	c := *a
	return &c
}
