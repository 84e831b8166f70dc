package attempts

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when no live attempt exists for an email. Expired
// attempts report the same error so callers cannot tell the cases apart.
var ErrNotFound = errors.New("attempt not found")

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface. Expired attempts are dropped lazily on read.
type InMemoryRepo struct {
	mu       sync.RWMutex
	attempts map[string]*Attempt
	nowTime  func() time.Time
}

// InMemoryRepoOption modifies an InMemoryRepo.
type InMemoryRepoOption func(*InMemoryRepo)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) InMemoryRepoOption {
	return func(r *InMemoryRepo) {
		r.nowTime = nowFunc
	}
}

// NewInMemoryRepo creates a new in-memory attempt repository
func NewInMemoryRepo(options ...InMemoryRepoOption) *InMemoryRepo {
	r := &InMemoryRepo{
		attempts: make(map[string]*Attempt),
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Upsert stores or replaces the attempt for an email. Two concurrent logins
// for the same email race here; last write wins, which only gates progress.
func (r *InMemoryRepo) Upsert(email string, attempt *Attempt) error {
	if email == "" {
		return errors.New("email cannot be empty")
	}
	if attempt == nil {
		return errors.New("attempt cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *attempt
	r.attempts[email] = &stored
	return nil
}

// Get retrieves the live attempt for an email. An expired attempt is removed
// and reported as not found.
func (r *InMemoryRepo) Get(email string) (*Attempt, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	attempt, exists := r.attempts[email]
	if !exists {
		return nil, ErrNotFound
	}
	if attempt.Expired(r.nowTime()) {
		delete(r.attempts, email)
		return nil, ErrNotFound
	}

	found := *attempt
	return &found, nil
}

// Delete removes an attempt.
func (r *InMemoryRepo) Delete(email string) error {
	if email == "" {
		return errors.New("email cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.attempts, email)
	return nil
}
