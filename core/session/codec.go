package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Decode parses a raw cookie value (base64-encoded JSON) into a Session.
// Both standard and URL-safe base64 alphabets are accepted, with or without
// padding, since browsers and proxies disagree on what survives a cookie jar.
// Any decode failure maps to ErrMalformed; callers treat that as fail-closed.
func Decode(raw string) (Session, error) {
	if raw == "" {
		return Session{}, ErrMalformed
	}

	decoded, err := decodeBase64(raw)
	if err != nil {
		return Session{}, errors.Join(ErrMalformed, err)
	}

	var sess Session
	if err := json.Unmarshal(decoded, &sess); err != nil {
		return Session{}, errors.Join(ErrMalformed, err)
	}

	return sess, nil
}

// Encode serializes a Session to its cookie wire form.
func Encode(sess Session) (string, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func decodeBase64(raw string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}

	var err error
	for _, enc := range encodings {
		var decoded []byte
		if decoded, err = enc.DecodeString(raw); err == nil {
			return decoded, nil
		}
	}
	return nil, err
}
