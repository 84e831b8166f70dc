package sessions

import (
	"context"
	"errors"
	"sync"
)

// InMemoryRepo is a thread-safe in-memory session store. Reads vastly
// outnumber writes, so it sits behind an RWMutex.
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]*Session // token hash -> session
}

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions: make(map[string]*Session),
	}
}

func (r *InMemoryRepo) Upsert(_ context.Context, session *Session) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	if session.TokenHash == "" {
		return errors.New("session token hash cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	stored.Token = "" // raw token never at rest
	r.sessions[stored.TokenHash] = &stored
	return nil
}

func (r *InMemoryRepo) Get(_ context.Context, tokenHash string) (*Session, error) {
	if tokenHash == "" {
		return nil, errors.New("token hash cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[tokenHash]
	if !exists {
		return nil, ErrInvalidToken
	}
	found := *session
	return &found, nil
}

func (r *InMemoryRepo) Delete(_ context.Context, tokenHash string) error {
	if tokenHash == "" {
		return errors.New("token hash cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, tokenHash)
	return nil
}

func (r *InMemoryRepo) DeleteByAccount(_ context.Context, accountID string) error {
	if accountID == "" {
		return errors.New("accountID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, session := range r.sessions {
		if session.AccountID == accountID {
			delete(r.sessions, hash)
		}
	}
	return nil
}
