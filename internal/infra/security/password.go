package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher verifies the desk operator's password against the configured
// hash. The zero value uses bcrypt's default cost, which is what the login
// flow wants; Hash exists so deployments can mint ADMIN_PASSWORD_HASH.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("security: hash password: %w", err)
	}
	return string(out), nil
}

// Compare returns a non-nil error when password does not match hash.
func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
