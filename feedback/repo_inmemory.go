package feedback

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepo is a thread-safe in-memory feedback store.
type InMemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]*Feedback
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{entries: make(map[string]*Feedback)}
}

func (r *InMemoryRepo) Create(_ context.Context, fb *Feedback) error {
	if fb == nil {
		return errors.New("feedback cannot be nil")
	}
	if err := fb.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}
	stored := *fb
	r.entries[stored.ID] = &stored
	return nil
}

func (r *InMemoryRepo) ListByAccount(_ context.Context, accountID string) ([]*Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Feedback, 0)
	for _, fb := range r.entries {
		if fb.AccountID == accountID {
			found := *fb
			list = append(list, &found)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}
