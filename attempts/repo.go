// Package attempts holds the ephemeral per-login record of progress through
// the verification stages. Attempts live in a short-lived store and are never
// persisted; one that outlives its TTL is treated as if it never existed.
package attempts

import "time"

// Stage is the protocol position an in-flight login has reached. There is no
// stored stage for "authenticated": reaching it deletes the attempt and issues
// a session instead.
type Stage int

const (
	StageColorVerified Stage = iota + 1
	StageSportVerified
)

func (s Stage) String() string {
	switch s {
	case StageColorVerified:
		return "color_verified"
	case StageSportVerified:
		return "sport_verified"
	default:
		return "unknown"
	}
}

// Attempt tracks one in-flight login, keyed by normalized email.
type Attempt struct {
	Email     string
	AccountID string
	Stage     Stage
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the attempt has aged out at the given instant.
func (a *Attempt) Expired(now time.Time) bool {
	return !a.ExpiresAt.After(now)
}

type Repo interface {
	Upsert(email string, attempt *Attempt) error
	Get(email string) (*Attempt, error)
	Delete(email string) error
}
