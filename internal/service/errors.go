package service

import "errors" // Sentinel errors

// ErrInvalidCredentials is returned by Login when the username or password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError describes input rejected before anything was written.
// Message is meant for the end user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
