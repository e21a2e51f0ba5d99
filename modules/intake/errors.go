package intake

import "errors"

var (
	// ErrMissingRequiredFields indicates a submission without meno,
	// priezvisko, or email. Client-correctable, maps to HTTP 400.
	ErrMissingRequiredFields = errors.New("missing required fields")

	// ErrRenderFailed indicates the external document generator exited
	// non-zero or ran past its timeout.
	ErrRenderFailed = errors.New("document rendering failed")

	// ErrDeliveryFailed indicates the mail transport rejected a message.
	ErrDeliveryFailed = errors.New("notification delivery failed")
)
