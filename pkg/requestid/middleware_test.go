package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlzenie/intake/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	newHandler := func(captured *string) http.Handler {
		return requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*captured = requestid.FromContext(r.Context())
		}))
	}

	t.Run("generates uuid when header absent", func(t *testing.T) {
		t.Parallel()

		var got string
		rec := httptest.NewRecorder()
		newHandler(&got).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
		assert.Equal(t, got, rec.Header().Get(requestid.Header))
	})

	t.Run("keeps valid inbound id", func(t *testing.T) {
		t.Parallel()

		var got string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.Header, "proxy-id_42")
		rec := httptest.NewRecorder()
		newHandler(&got).ServeHTTP(rec, req)

		assert.Equal(t, "proxy-id_42", got)
	})

	t.Run("replaces malformed inbound id", func(t *testing.T) {
		t.Parallel()

		var got string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.Header, "bad id with spaces")
		rec := httptest.NewRecorder()
		newHandler(&got).ServeHTTP(rec, req)

		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})
}

func TestFromContextMissing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
}
