package session

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies which kind of actor a session belongs to.
// The role determines both the cookie/store key the session lives under
// and which fields must be present for the session to be considered complete.
type Role string

const (
	// RoleAdmin is a back-office administrator session.
	RoleAdmin Role = "admin"
	// RoleCompany is a company (customer) dashboard session.
	RoleCompany Role = "company"
)

// Key returns the cookie and store key for sessions of this role.
func (r Role) Key() string {
	switch r {
	case RoleAdmin:
		return "admin_session"
	default:
		return "company_session"
	}
}

// Session is the credential blob issued at login. It is stored client-side
// and mirrored in a cookie as base64(JSON); there is no signature, so at the
// routing layer expiry is the sole authority for validity.
type Session struct {
	CompanyID   string    `json:"company_id,omitempty"`
	AdminID     string    `json:"admin_id,omitempty"`
	AccessToken string    `json:"access_token,omitempty"`
	ExpiresAt   Timestamp `json:"expires_at"`
}

// ID returns the principal identifier for the given role.
func (s Session) ID(role Role) string {
	if role == RoleAdmin {
		return s.AdminID
	}
	return s.CompanyID
}

// IsExpired reports whether the session expiry has passed.
func (s Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt.Time)
}

// Validate performs the local (network-free) check: expiry first, then the
// role-specific shape check. Company sessions must carry both the company ID
// and the access token; admin sessions only need to be unexpired.
func (s Session) Validate(role Role) error {
	if s.IsExpired() {
		return ErrExpired
	}
	if role == RoleCompany && (s.CompanyID == "" || s.AccessToken == "") {
		return ErrIncomplete
	}
	return nil
}

// Timestamp unmarshals the expiry field from the formats login backends
// actually emit: RFC 3339 strings, unix seconds, or unix milliseconds.
type Timestamp struct {
	time.Time
}

// millisecondEpochCutoff separates unix-second from unix-millisecond values.
// Anything above it cannot be a plausible second-resolution timestamp.
const millisecondEpochCutoff = 1e11

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid expires_at %q: %w", s, err)
		}
		t.Time = parsed
		return nil
	}

	var epoch float64
	if err := json.Unmarshal(data, &epoch); err != nil {
		return fmt.Errorf("invalid expires_at: %w", err)
	}
	if epoch > millisecondEpochCutoff {
		t.Time = time.UnixMilli(int64(epoch))
	} else {
		t.Time = time.Unix(int64(epoch), 0)
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}
