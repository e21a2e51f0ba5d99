package ratelimit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlzenie/intake/pkg/ratelimit"
)

const limitMessage = "Príliš veľa žiadostí. Skúste znova o 15 minút."

func newLimitedHandler(t *testing.T, limit int, calls *int) http.Handler {
	t.Helper()

	sw, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), limit, time.Minute)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})

	return ratelimit.Middleware(sw, ratelimit.ByClientIP, limitMessage)(next)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("allows under the cap and rejects above it", func(t *testing.T) {
		t.Parallel()

		var calls int
		h := newLimitedHandler(t, 3, &calls)

		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/submit-form", nil)
			req.RemoteAddr = "203.0.113.77:1000"
			h.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/submit-form", nil)
		req.RemoteAddr = "203.0.113.77:1000"
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, 3, calls, "rejected request must not reach the handler")
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, limitMessage, body["error"])
	})

	t.Run("distinct clients are limited separately", func(t *testing.T) {
		t.Parallel()

		var calls int
		h := newLimitedHandler(t, 1, &calls)

		for _, addr := range []string{"198.51.100.1:1", "198.51.100.2:1", "198.51.100.3:1"} {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/submit-form", nil)
			req.RemoteAddr = addr
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
		assert.Equal(t, 3, calls)
	})

	t.Run("sets rate limit headers on success", func(t *testing.T) {
		t.Parallel()

		var calls int
		h := newLimitedHandler(t, 5, &calls)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/submit-form", nil)
		req.RemoteAddr = "203.0.113.88:1000"
		h.ServeHTTP(rec, req)

		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
	})
}
