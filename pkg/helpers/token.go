package helpers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

var ErrMalformedToken = errors.New("malformed token")

// MockTokenCodec encodes {userId, timestamp} as base64 JSON. The token carries no signature
// and no expiry; anyone can forge one. Use JWTManager outside local development.
type MockTokenCodec struct{}

type mockToken struct {
	UserID    string `json:"userId"`
	Timestamp int64  `json:"timestamp"`
}

func (MockTokenCodec) Issue(userID string, issuedAt time.Time) (string, error) {
	b, err := json.Marshal(mockToken{UserID: userID, Timestamp: issuedAt.UnixMilli()})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (MockTokenCodec) Parse(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", ErrMalformedToken
	}
	var t mockToken
	if err := json.Unmarshal(raw, &t); err != nil || t.UserID == "" {
		return "", ErrMalformedToken
	}
	return t.UserID, nil
}
