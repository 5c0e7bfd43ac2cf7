// ABOUTME: Sentinel errors shared by pipeline operations
// ABOUTME: Callers match with errors.Is; messages stay lowercase
package models

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConsentRequired   = errors.New("signer consent is required")
	ErrSignatureRequired = errors.New("captured signature is required")
	ErrNotAdmin          = errors.New("operation requires an admin")
	ErrQuantityMismatch  = errors.New("reconciled quantities exceed delivered quantity")
	ErrForbidden         = errors.New("viewer lacks permission")
)
