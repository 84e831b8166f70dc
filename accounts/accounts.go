package accounts

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pictlock/go-mfa-server/graphical"
)

// RoleType represents an account's role.
type RoleType string

const (
	RoleRegular RoleType = "regular"
	RoleAdmin   RoleType = "admin"
)

// ColorOptions is the fixed palette a registrant chooses their color
// preference from. The list mirrors the registration form of the existing
// client and must not be reordered or extended without a data migration.
var ColorOptions = []string{"Red", "Blue", "Green", "Yellow", "Purple", "Orange", "Black", "White"}

// SportOptions is the fixed list of sport preferences.
var SportOptions = []string{"Football", "Basketball", "Soccer", "Tennis", "Swimming", "Baseball", "Golf", "Cricket"}

// Account is the persisted identity record. The security fields
// (PasswordHash, ColorPreference, SportPreference, Graphical) are written once
// at registration; the profile surface only ever updates Name and Email.
type Account struct {
	ID              string             `json:"id,omitempty"`
	Email           string             `json:"email,omitempty"`
	Name            string             `json:"name,omitempty"`
	ColorPreference string             `json:"-"`
	SportPreference string             `json:"-"`
	PasswordHash    string             `json:"-"`
	Graphical       graphical.Template `json:"-"`
	Role            RoleType           `json:"role,omitempty"`
	CreatedAt       time.Time          `json:"created_at,omitempty"`
}

// IsAdmin reports whether the account carries the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// NormalizeEmail lower-cases and trims an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidColor reports membership of the fixed color palette.
func ValidColor(color string) bool {
	return contains(ColorOptions, color)
}

// ValidSport reports membership of the fixed sport list.
func ValidSport(sport string) bool {
	return contains(SportOptions, sport)
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
