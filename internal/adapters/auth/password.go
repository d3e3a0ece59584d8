// Package auth holds credential adapters.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/example/madar/internal/ports/secondary"
)

const defaultCost = 12

// BcryptHasher implements secondary.PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher at cost 12. Tests may pass bcrypt.MinCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = defaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether password matches hash.
func (h *BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var _ secondary.PasswordHasher = (*BcryptHasher)(nil)
