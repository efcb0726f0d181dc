package helpers

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// MockHasher stores passwords base64 encoded. It is reversible and only meant for the local,
// mock auth mode.
type MockHasher struct{}

func (MockHasher) Hash(plain string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(plain)), nil
}

func (h MockHasher) Compare(hash, plain string) bool {
	enc, _ := h.Hash(plain)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(enc)) == 1
}

// BcryptHasher hashes passwords with bcrypt. Cost 0 means bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare compares a bcrypt hash with a plain password
func (BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
