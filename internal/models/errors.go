package models

import "errors"

// Sentinel errors shared by the services and the persistence boundary.
// Handlers map these onto HTTP status codes; everything else that crosses
// the boundary is wrapped and treated as a retryable transport failure.
var (
	// Submission
	ErrEmptyCart = errors.New("cart is empty")
	ErrNoSession = errors.New("no operator session bound to a till")

	// Lifecycle conflicts
	ErrTerminalState = errors.New("ticket is in a terminal state")
	ErrNotWinner     = errors.New("ticket is not a winner")
	ErrNotActive     = errors.New("ticket is not active")

	// Lookups
	ErrTicketNotFound = errors.New("ticket not found")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid username or password")
)
