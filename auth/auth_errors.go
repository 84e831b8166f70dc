package auth

import "errors"

var (
	// ErrInvalidCredential is returned for every factor mismatch at every
	// stage: unknown email, wrong color, wrong sport, wrong password, wrong
	// click points. The cases are deliberately indistinguishable so a probe
	// cannot enumerate accounts or learn which factor it got right.
	ErrInvalidCredential = errors.New("invalid credentials")

	// ErrStageOutOfOrder is returned when a stage is submitted without a live
	// attempt at the immediately preceding stage: the attempt is missing,
	// expired, or parked at the wrong stage. It reveals only protocol state.
	ErrStageOutOfOrder = errors.New("verification stage out of order")
)

// Registration validation errors.
var (
	ErrPasswordMismatch         = errors.New("passwords do not match")
	ErrWeakPassword             = errors.New("password must be at least 6 characters")
	ErrInvalidPreference        = errors.New("invalid color or sport preference")
	ErrUnknownImage             = errors.New("unknown image")
	ErrInvalidGraphicalPassword = errors.New("graphical password must be 4 points within the image")
)

// IsValidationError reports whether err is one of the registration input
// errors, which the HTTP layer maps to 400 rather than 401.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrPasswordMismatch,
		ErrWeakPassword,
		ErrInvalidPreference,
		ErrUnknownImage,
		ErrInvalidGraphicalPassword,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
