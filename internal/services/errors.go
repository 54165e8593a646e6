package services

import "errors"

// ErrInvalidCredentials is returned by Login for both an unknown account
// and a wrong password, so callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ConflictError reports a uniqueness violation with a user-facing message.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
