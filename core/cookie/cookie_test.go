package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylens/dashgate/core/cookie"
)

func TestManager_SetAndGet(t *testing.T) {
	m := cookie.New()

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "company_session", "blob-value"))

	// Replay the Set-Cookie header on a new request.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	got, err := m.Get(r, "company_session")
	require.NoError(t, err)
	assert.Equal(t, "blob-value", got)
}

func TestManager_GetMissing(t *testing.T) {
	m := cookie.New()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := m.Get(r, "nope")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Delete(t *testing.T) {
	m := cookie.New()
	w := httptest.NewRecorder()

	m.Delete(w, "company_session")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "company_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestManager_SizeLimit(t *testing.T) {
	m := cookie.New()
	w := httptest.NewRecorder()

	err := m.Set(w, "big", strings.Repeat("x", cookie.MaxCookieSize+1))
	assert.ErrorIs(t, err, cookie.ErrCookieTooLarge)
}

func TestManager_Options(t *testing.T) {
	m := cookie.New(cookie.WithSecure(true), cookie.WithDomain("example.com"))
	w := httptest.NewRecorder()

	require.NoError(t, m.Set(w, "s", "v", cookie.WithMaxAge(3600)))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, "example.com", cookies[0].Domain)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
}

func TestNewFromConfig(t *testing.T) {
	m := cookie.NewFromConfig(cookie.Config{
		Path:     "/app",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	w := httptest.NewRecorder()

	require.NoError(t, m.Set(w, "s", "v"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/app", cookies[0].Path)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}
