package config

import (
	"time"
)

type SecurityConfig interface {
	GetAttemptTTL() time.Duration
	GetSessionTTL() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetAttemptTTL bounds how long a half-authenticated login may sit between
// stages before it is treated as if it never existed.
func (Security) GetAttemptTTL() time.Duration {
	if v := GetEnv("ATTEMPT_TTL", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 5 * time.Minute
}

func (Security) GetSessionTTL() time.Duration {
	if v := GetEnv("SESSION_TTL", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 24 * time.Hour
}
