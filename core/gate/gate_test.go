package gate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylens/dashgate/core/gate"
	"github.com/paylens/dashgate/core/session"
)

type fakeValidator struct {
	valid bool
	err   error
	calls int
}

func (f *fakeValidator) Validate(_ context.Context, _ string) (bool, error) {
	f.calls++
	return f.valid, f.err
}

func validSession() session.Session {
	return session.Session{
		CompanyID:   "c-1",
		AccessToken: "tok",
		ExpiresAt:   session.Timestamp{Time: time.Now().Add(time.Hour)},
	}
}

func TestCheckLocal_Success(t *testing.T) {
	raw, err := session.Encode(validSession())
	require.NoError(t, err)

	p, err := gate.CheckLocal(raw, session.RoleCompany)
	require.NoError(t, err)
	assert.Equal(t, "c-1", p.ID)
	assert.Equal(t, "tok", p.Token)
	assert.Equal(t, session.RoleCompany, p.Role)
}

func TestCheckLocal_Malformed(t *testing.T) {
	_, err := gate.CheckLocal("%%%garbage%%%", session.RoleCompany)
	assert.ErrorIs(t, err, session.ErrMalformed)
}

func TestCheckLocal_Expired(t *testing.T) {
	sess := validSession()
	sess.ExpiresAt = session.Timestamp{Time: time.Now().Add(-time.Minute)}
	raw, err := session.Encode(sess)
	require.NoError(t, err)

	_, err = gate.CheckLocal(raw, session.RoleCompany)
	assert.ErrorIs(t, err, session.ErrExpired)
}

func TestCheck_Authorized(t *testing.T) {
	v := &fakeValidator{valid: true}
	g := gate.New(v)

	outcome := g.Check(context.Background(), validSession(), session.RoleCompany)

	require.True(t, outcome.IsAuthorized())
	p, ok := outcome.Principal()
	require.True(t, ok)
	assert.Equal(t, "c-1", p.ID)
	assert.Equal(t, 1, v.calls)
}

func TestCheck_LocalFailureShortCircuits(t *testing.T) {
	v := &fakeValidator{valid: true}
	g := gate.New(v)

	sess := validSession()
	sess.AccessToken = ""
	outcome := g.Check(context.Background(), sess, session.RoleCompany)

	assert.False(t, outcome.IsAuthorized())
	assert.Equal(t, 0, v.calls, "remote validator must not be called when local check fails")
}

func TestCheck_RemoteInvalid(t *testing.T) {
	g := gate.New(&fakeValidator{valid: false})

	outcome := g.Check(context.Background(), validSession(), session.RoleCompany)

	assert.False(t, outcome.IsAuthorized())
	assert.Equal(t, "session expired", outcome.Reason())
}

func TestCheck_RemoteErrorFailsClosed(t *testing.T) {
	g := gate.New(&fakeValidator{err: errors.New("connection refused")})

	outcome := g.Check(context.Background(), validSession(), session.RoleCompany)

	assert.False(t, outcome.IsAuthorized())
	assert.Equal(t, "session expired", outcome.Reason())
	_, ok := outcome.Principal()
	assert.False(t, ok)
}

func TestHTTPValidator(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantValid bool
		wantErr   bool
	}{
		{
			name: "valid token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"is_valid":true}]`))
			},
			wantValid: true,
		},
		{
			name: "revoked token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"is_valid":false}]`))
			},
			wantValid: false,
		},
		{
			name: "no rows means invalid",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			wantValid: false,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: true,
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			v, err := gate.NewHTTPValidator(gate.HTTPValidatorConfig{Endpoint: srv.URL})
			require.NoError(t, err)

			valid, err := v.Validate(context.Background(), "tok")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, gate.ErrRemoteValidation)
				assert.False(t, valid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, valid)
		})
	}
}

func TestHTTPValidator_Unreachable(t *testing.T) {
	v, err := gate.NewHTTPValidator(gate.HTTPValidatorConfig{
		Endpoint: "http://127.0.0.1:1/validate",
		Timeout:  200 * time.Millisecond,
	})
	require.NoError(t, err)

	valid, err := v.Validate(context.Background(), "tok")
	assert.ErrorIs(t, err, gate.ErrRemoteValidation)
	assert.False(t, valid)
}

func TestNewHTTPValidator_MissingEndpoint(t *testing.T) {
	_, err := gate.NewHTTPValidator(gate.HTTPValidatorConfig{})
	assert.Error(t, err)
}
