package shared

import "errors"

var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("already exists")
	// ErrValidation indicates a request that fails input validation.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates login failure. Unknown usernames and
	// wrong passwords surface identically through this sentinel.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSignature indicates a token whose signature does not verify.
	ErrInvalidSignature = errors.New("token signature invalid")
	// ErrTokenExpired indicates a token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed indicates a token that cannot be parsed.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrPermissionDenied indicates the authority set lacks the required permission.
	ErrPermissionDenied = errors.New("permission denied")
)

// UserSafeMessage returns a message safe to surface to API clients.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrPermissionDenied):
		return err.Error()
	default:
		return "internal error"
	}
}
