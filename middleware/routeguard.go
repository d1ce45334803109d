package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/paylens/dashgate/core/cookie"
	"github.com/paylens/dashgate/core/gate"
	"github.com/paylens/dashgate/core/session"
)

// Identity headers attached to requests that pass the company check. They are
// advisory for downstream handlers, not a trust boundary: nothing re-verifies
// them at this hop.
const (
	HeaderCompanyID   = "X-Company-ID"
	HeaderAccessToken = "X-Access-Token"
)

// RouteClass is the classification of a request path.
type RouteClass int

const (
	// RoutePublic paths are always allowed, with no session check at all.
	RoutePublic RouteClass = iota
	// RouteAdmin paths require a valid admin session.
	RouteAdmin
	// RouteProtected paths require a complete, valid company session.
	RouteProtected
	// RouteDefault paths are everything unlisted: allowed without a session.
	RouteDefault
)

type principalKey struct{}

// RouteGuardConfig configures the route guard middleware.
// Prefix tables support comma-separated environment values.
type RouteGuardConfig struct {
	// PublicPrefixes are checked first and win outright: a path that is both
	// public and protected by prefix is public.
	PublicPrefixes []string `env:"ROUTE_PUBLIC_PREFIXES" envSeparator:"," envDefault:"/login,/admin/login,/password"`
	// AdminPrefixes require the admin local check (the admin login page
	// excluded, matched through PublicPrefixes).
	AdminPrefixes []string `env:"ROUTE_ADMIN_PREFIXES" envSeparator:"," envDefault:"/admin"`
	// ProtectedPrefixes require the full company local check.
	ProtectedPrefixes []string `env:"ROUTE_PROTECTED_PREFIXES" envSeparator:"," envDefault:"/dashboard,/api/kpi,/settings"`
	// SkipPrefixes name infrastructure paths the guard never classifies:
	// framework assets, the public API prefix, favicon, static files.
	SkipPrefixes []string `env:"ROUTE_SKIP_PREFIXES" envSeparator:"," envDefault:"/_assets,/api/public,/favicon.ico,/static"`

	// LoginPath is the redirect target for failed company checks.
	LoginPath string `env:"ROUTE_LOGIN_PATH" envDefault:"/login"`
	// AdminLoginPath is the redirect target for failed admin checks.
	AdminLoginPath string `env:"ROUTE_ADMIN_LOGIN_PATH" envDefault:"/admin/login"`

	// Cookies reads and clears session cookies (required).
	Cookies *cookie.Manager
	// Logger for structured logging (default: discard).
	Logger *slog.Logger
}

// Classify maps a path to its route class using prefix matching. Matching is
// plain string-prefix, not path-segment-aware, mirroring how the tables are
// written. Public wins over admin and protected.
func (c RouteGuardConfig) Classify(path string) RouteClass {
	if hasAnyPrefix(path, c.PublicPrefixes) {
		return RoutePublic
	}
	if hasAnyPrefix(path, c.AdminPrefixes) {
		return RouteAdmin
	}
	if hasAnyPrefix(path, c.ProtectedPrefixes) {
		return RouteProtected
	}
	return RouteDefault
}

// RouteGuard creates the edge middleware: classify the path, apply the local
// session check the class demands, then allow, redirect, or pass through.
// One terminal decision per request; no per-request state survives it.
func RouteGuard(cfg RouteGuardConfig) func(http.Handler) http.Handler {
	if cfg.Cookies == nil {
		panic("routeguard middleware: cookie manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			if hasAnyPrefix(path, cfg.SkipPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			switch cfg.Classify(path) {
			case RoutePublic, RouteDefault:
				// Default-open: anything not explicitly admin or protected
				// passes without a session check.
				next.ServeHTTP(w, r)

			case RouteAdmin:
				cfg.handleAdmin(w, r, next)

			case RouteProtected:
				cfg.handleProtected(w, r, next)
			}
		})
	}
}

func (c RouteGuardConfig) handleAdmin(w http.ResponseWriter, r *http.Request, next http.Handler) {
	raw, err := c.Cookies.Get(r, session.RoleAdmin.Key())
	if err != nil {
		http.Redirect(w, r, c.AdminLoginPath, http.StatusFound)
		return
	}

	p, err := gate.CheckLocal(raw, session.RoleAdmin)
	if err != nil {
		// Only a stale-but-well-formed cookie is worth clearing; a missing
		// one already cleared itself.
		if errors.Is(err, session.ErrExpired) {
			c.Cookies.Delete(w, session.RoleAdmin.Key())
		}
		c.Logger.DebugContext(r.Context(), "admin session rejected",
			"path", r.URL.Path, "error", err)
		http.Redirect(w, r, c.AdminLoginPath, http.StatusFound)
		return
	}

	next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
}

func (c RouteGuardConfig) handleProtected(w http.ResponseWriter, r *http.Request, next http.Handler) {
	raw, err := c.Cookies.Get(r, session.RoleCompany.Key())
	if err != nil {
		http.Redirect(w, r, c.LoginPath, http.StatusFound)
		return
	}

	p, err := gate.CheckLocal(raw, session.RoleCompany)
	if err != nil {
		c.Cookies.Delete(w, session.RoleCompany.Key())
		c.Logger.DebugContext(r.Context(), "company session rejected",
			"path", r.URL.Path, "error", err)
		http.Redirect(w, r, c.LoginPath, http.StatusFound)
		return
	}

	// Propagate identity for downstream consumers.
	r.Header.Set(HeaderCompanyID, p.ID)
	r.Header.Set(HeaderAccessToken, p.Token)

	next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
}

func withPrincipal(ctx context.Context, p gate.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal retrieves the validated principal from the request context.
// Returns false for requests that passed without a session check.
func GetPrincipal(ctx context.Context) (gate.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(gate.Principal)
	return p, ok
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
