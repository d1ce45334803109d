package cookie

import (
	"errors"
	"net/http"
)

// MaxCookieSize is the maximum size for a cookie (4KB).
const MaxCookieSize = 4096

var (
	// ErrCookieNotFound indicates the requested cookie doesn't exist in the request.
	ErrCookieNotFound = errors.New("cookie not found in request")

	// ErrCookieTooLarge indicates the cookie exceeds the maximum allowed size.
	ErrCookieTooLarge = errors.New("cookie exceeds maximum size")
)

// Manager handles HTTP cookie operations with shared secure defaults.
// Session blobs pass through it unmodified; it owns attributes, not content.
type Manager struct {
	defaults Options
	maxSize  int
}

// New creates a cookie manager with secure defaults (path "/", HttpOnly,
// SameSite=Lax), overridable per manager via options.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		defaults: applyOptions(defaults, opts),
		maxSize:  MaxCookieSize,
	}
}

// Set stores a cookie value. Per-call options override manager defaults.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	if len(c.String()) > m.maxSize {
		return ErrCookieTooLarge
	}

	http.SetCookie(w, c)
	return nil
}

// Get returns a cookie value from the request, or ErrCookieNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", ErrCookieNotFound
	}
	return c.Value, nil
}

// Delete clears a cookie by sending an empty value with Max-Age 0.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}
