// Package feedback stores the short feedback notes authenticated users can
// leave about the login experience.
package feedback

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("feedback not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Feedback struct {
	ID        string    `json:"id"`
	AccountID string    `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the shape of a submission before it is stored.
func (f *Feedback) Validate() error {
	if f.Title == "" {
		return errors.New("title is required")
	}
	if f.Content == "" {
		return errors.New("content is required")
	}
	if f.Rating < 1 || f.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

type Repo interface {
	Create(ctx context.Context, fb *Feedback) error
	ListByAccount(ctx context.Context, accountID string) ([]*Feedback, error)
}
