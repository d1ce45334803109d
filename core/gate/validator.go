package gate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRemoteValidation is returned when the token validation RPC fails at the
// transport level. Callers treat it as "invalid" (fail-closed).
var ErrRemoteValidation = errors.New("remote token validation failed")

// TokenValidator confirms that an access token is currently valid. This can
// differ from simple expiry: a token may be revoked before it expires.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (bool, error)
}

// HTTPValidatorConfig provides environment-based configuration for the
// HTTP token validator.
type HTTPValidatorConfig struct {
	// Endpoint is the token validation RPC URL (required).
	Endpoint string `env:"TOKEN_VALIDATION_URL,required"`
	// Timeout bounds the validation round trip.
	Timeout time.Duration `env:"TOKEN_VALIDATION_TIMEOUT" envDefault:"5s"`
}

// HTTPValidator calls an external token-validation endpoint over HTTP. The
// endpoint receives the token and answers with a collection of validation
// rows; an empty collection means invalid, otherwise the first row's
// is_valid field decides.
type HTTPValidator struct {
	client   *http.Client
	endpoint string
}

// NewHTTPValidator creates a validator from configuration.
func NewHTTPValidator(cfg HTTPValidatorConfig) (*HTTPValidator, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("token validation endpoint is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTPValidator{
		client:   &http.Client{Timeout: timeout},
		endpoint: cfg.Endpoint,
	}, nil
}

type validationRequest struct {
	Token string `json:"token"`
}

type validationRow struct {
	IsValid bool `json:"is_valid"`
}

// Validate performs the validation RPC. Network errors and non-2xx responses
// are wrapped in ErrRemoteValidation so the caller can fail closed.
func (v *HTTPValidator) Validate(ctx context.Context, token string) (bool, error) {
	body, err := json.Marshal(validationRequest{Token: token})
	if err != nil {
		return false, errors.Join(ErrRemoteValidation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, errors.Join(ErrRemoteValidation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, errors.Join(ErrRemoteValidation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, errors.Join(ErrRemoteValidation,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var rows []validationRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return false, errors.Join(ErrRemoteValidation, err)
	}

	// No rows means the token is unknown to the validator: invalid, not an error.
	if len(rows) == 0 {
		return false, nil
	}
	return rows[0].IsValid, nil
}
