// Package identity holds the password-hashing capability. Handlers depend on
// the Provider interface, not on bcrypt directly, so tests and future
// migrations can swap the implementation.
package identity

import "golang.org/x/crypto/bcrypt"

type Provider interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) error
}

type BcryptProvider struct {
	Cost int
}

func NewBcryptProvider() BcryptProvider {
	return BcryptProvider{Cost: bcrypt.DefaultCost}
}

func (p BcryptProvider) HashPassword(password string) (string, error) {
	cost := p.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (p BcryptProvider) VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
