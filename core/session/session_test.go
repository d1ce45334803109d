package session_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylens/dashgate/core/session"
)

func TestRole_Key(t *testing.T) {
	assert.Equal(t, "admin_session", session.RoleAdmin.Key())
	assert.Equal(t, "company_session", session.RoleCompany.Key())
}

func TestSession_Validate_Company(t *testing.T) {
	future := session.Timestamp{Time: time.Now().Add(time.Hour)}

	tests := []struct {
		name    string
		sess    session.Session
		wantErr error
	}{
		{
			name: "complete and unexpired",
			sess: session.Session{CompanyID: "c-1", AccessToken: "tok", ExpiresAt: future},
		},
		{
			name:    "expired",
			sess:    session.Session{CompanyID: "c-1", AccessToken: "tok", ExpiresAt: session.Timestamp{Time: time.Now().Add(-time.Minute)}},
			wantErr: session.ErrExpired,
		},
		{
			name:    "missing company id",
			sess:    session.Session{AccessToken: "tok", ExpiresAt: future},
			wantErr: session.ErrIncomplete,
		},
		{
			name:    "missing access token",
			sess:    session.Session{CompanyID: "c-1", ExpiresAt: future},
			wantErr: session.ErrIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sess.Validate(session.RoleCompany)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSession_Validate_AdminShapeNotRequired(t *testing.T) {
	// Admin sessions only need to be unexpired; the completeness check is
	// company-specific.
	sess := session.Session{
		AdminID:   "a-1",
		ExpiresAt: session.Timestamp{Time: time.Now().Add(time.Hour)},
	}

	assert.NoError(t, sess.Validate(session.RoleAdmin))
}

func TestSession_ID(t *testing.T) {
	sess := session.Session{CompanyID: "c-1", AdminID: "a-1"}

	assert.Equal(t, "c-1", sess.ID(session.RoleCompany))
	assert.Equal(t, "a-1", sess.ID(session.RoleAdmin))
}

func TestTimestamp_UnmarshalFormats(t *testing.T) {
	ref := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
	}{
		{"rfc3339", fmt.Sprintf("%q", ref.Format(time.RFC3339))},
		{"unix seconds", fmt.Sprintf("%d", ref.Unix())},
		{"unix milliseconds", fmt.Sprintf("%d", ref.UnixMilli())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts session.Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			assert.True(t, ts.Equal(ref), "got %v, want %v", ts.Time, ref)
		})
	}
}

func TestTimestamp_UnmarshalInvalid(t *testing.T) {
	var ts session.Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &ts))
}

func TestDecode_RoundTrip(t *testing.T) {
	sess := session.Session{
		CompanyID:   "c-42",
		AccessToken: "secret-token",
		ExpiresAt:   session.Timestamp{Time: time.Now().Add(time.Hour).Truncate(time.Second)},
	}

	raw, err := session.Encode(sess)
	require.NoError(t, err)

	decoded, err := session.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, sess.CompanyID, decoded.CompanyID)
	assert.Equal(t, sess.AccessToken, decoded.AccessToken)
	assert.True(t, decoded.ExpiresAt.Equal(sess.ExpiresAt.Time))
}

func TestDecode_URLSafeBase64(t *testing.T) {
	payload := `{"company_id":"c-1","access_token":"tok","expires_at":"2030-01-01T00:00:00Z"}`
	raw := base64.RawURLEncoding.EncodeToString([]byte(payload))

	decoded, err := session.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "c-1", decoded.CompanyID)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"base64 of non-json", base64.StdEncoding.EncodeToString([]byte("hello world"))},
		{"base64 of wrong json type", base64.StdEncoding.EncodeToString([]byte(`[1,2,3]`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := session.Decode(tt.raw)
			assert.ErrorIs(t, err, session.ErrMalformed)
		})
	}
}
