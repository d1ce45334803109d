package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylens/dashgate/middleware"
)

func TestRequestID_GeneratesUUID(t *testing.T) {
	var fromCtx string
	h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetRequestID(r.Context())
		require.True(t, ok)
		fromCtx = id
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	header := w.Header().Get("X-Request-ID")
	assert.Equal(t, fromCtx, header)
	_, err := uuid.Parse(header)
	assert.NoError(t, err)
}

func TestRequestID_UseExisting(t *testing.T) {
	h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "upstream-id")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}

func TestRequestID_CustomHeaderAndGenerator(t *testing.T) {
	h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		HeaderName: "X-Trace-ID",
		Generator:  func() string { return "fixed" },
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "fixed", w.Header().Get("X-Trace-ID"))
}
