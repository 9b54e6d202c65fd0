package stor

import "github.com/pkg/errors"

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student is already signed up")
	ErrNotSignedUp      = errors.New("student is not signed up")
)

// IsRosterError reports whether err is one of the roster's client-facing
// errors (as opposed to a storage failure).
func IsRosterError(err error) bool {
	return errors.Is(err, ErrActivityNotFound) || errors.Is(err, ErrAlreadySignedUp) || errors.Is(err, ErrNotSignedUp)
}
