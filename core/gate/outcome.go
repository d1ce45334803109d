package gate

// AuthOutcome is the verdict of a two-tier session check. It is a tagged
// value: either Authorized with a principal, or Unauthorized with a
// user-facing reason. The caller decides what to do with the verdict
// (typically navigate to a login page); the gate itself performs no side
// effects.
type AuthOutcome struct {
	principal  Principal
	reason     string
	authorized bool
}

// Authorized builds a positive outcome carrying the validated principal.
func Authorized(p Principal) AuthOutcome {
	return AuthOutcome{principal: p, authorized: true}
}

// Unauthorized builds a negative outcome with a plain-language reason.
func Unauthorized(reason string) AuthOutcome {
	return AuthOutcome{reason: reason}
}

// IsAuthorized reports whether the check passed.
func (o AuthOutcome) IsAuthorized() bool {
	return o.authorized
}

// Principal returns the validated identity. The second return value is false
// for unauthorized outcomes.
func (o AuthOutcome) Principal() (Principal, bool) {
	return o.principal, o.authorized
}

// Reason returns the user-facing failure reason, or "" when authorized.
func (o AuthOutcome) Reason() string {
	return o.reason
}
