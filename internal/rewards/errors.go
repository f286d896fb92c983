package rewards

import "errors"

// Validation errors are user-correctable and map to 400 at the HTTP
// boundary. Anything else surfaced by the service is a storage failure.
var (
	// ErrInvalidUserID is returned for an empty or missing user id.
	ErrInvalidUserID = errors.New("user_id is required")
	// ErrInvalidActionType is returned for an empty or missing action type.
	ErrInvalidActionType = errors.New("action_type is required")
)

// IsValidationError reports whether err is caller-correctable input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidUserID) || errors.Is(err, ErrInvalidActionType)
}
