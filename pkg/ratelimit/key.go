package ratelimit

import (
	"net/http"

	"github.com/oddlzenie/intake/pkg/clientip"
)

// KeyFunc extracts a limiter key from an HTTP request.
type KeyFunc func(*http.Request) string

// ByClientIP keys the limiter on the resolved client address, the policy
// the submission endpoint uses.
func ByClientIP(r *http.Request) string {
	return clientip.GetIP(r)
}
