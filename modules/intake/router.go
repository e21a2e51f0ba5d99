package intake

import (
	"github.com/go-chi/chi/v5"

	"github.com/oddlzenie/intake/pkg/ratelimit"
)

const msgRateLimited = "Príliš veľa žiadostí. Skúste znova o 15 minút."

// Router mounts the module's API routes. The rate limiter applies only to
// the submission endpoint, keyed by client IP.
func Router(h *Handler, limiter ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.Middleware(limiter, ratelimit.ByClientIP, msgRateLimited)).
		Post("/submit-form", h.SubmitForm)
	return r
}
