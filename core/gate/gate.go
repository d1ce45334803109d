package gate

import (
	"context"
	"io"
	"log/slog"

	"github.com/paylens/dashgate/core/session"
)

// Principal is the identity extracted from a successfully validated session.
// It is advisory when propagated via headers: nothing re-verifies it
// cryptographically at that hop, so downstream code must not treat it as a
// trust boundary.
type Principal struct {
	ID    string
	Token string
	Role  session.Role
}

// CheckLocal decodes a raw cookie blob and runs the synchronous, network-free
// validation for the given role. It is the check used at the routing edge,
// where a network round trip per request would be too costly.
func CheckLocal(raw string, role session.Role) (Principal, error) {
	sess, err := session.Decode(raw)
	if err != nil {
		return Principal{}, err
	}

	if err := sess.Validate(role); err != nil {
		return Principal{}, err
	}

	return Principal{ID: sess.ID(role), Token: sess.AccessToken, Role: role}, nil
}

// Gate combines the local check with a remote, revocation-aware token check.
// The remote check runs once per data-fetch cycle, where the extra round trip
// is acceptable and revocation must be honored.
type Gate struct {
	validator TokenValidator
	logger    *slog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger used for remote validation failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Gate backed by the given token validator.
func New(validator TokenValidator, opts ...Option) *Gate {
	g := &Gate{
		validator: validator,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check runs the two-tier validation on an already-decoded session: the local
// check first, then the remote token validation. Any failure anywhere,
// including a transport error talking to the validator, resolves to
// Unauthorized. The verdict is never partial.
//
// The local and remote checks can disagree: a token the local check accepts
// may have been revoked. Check always prefers the remote verdict; the
// routing edge runs only the local check and lives with that window.
func (g *Gate) Check(ctx context.Context, sess session.Session, role session.Role) AuthOutcome {
	if err := sess.Validate(role); err != nil {
		return Unauthorized(err.Error())
	}

	valid, err := g.validator.Validate(ctx, sess.AccessToken)
	if err != nil {
		// Fail closed: an unreachable validator means "not authorized".
		g.logger.WarnContext(ctx, "remote token validation failed", "error", err)
		return Unauthorized("session expired")
	}
	if !valid {
		return Unauthorized("session expired")
	}

	return Authorized(Principal{ID: sess.ID(role), Token: sess.AccessToken, Role: role})
}
