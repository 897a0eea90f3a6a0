package demo

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/kbukum/fixturekit/di"
)

// HasherKey is the container key of the PasswordHasher.
const HasherKey = "demo.password-hasher"

// DefaultPassword is the clear text password of every demo user.
const DefaultPassword = "fixtures"

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptHasher hashes with bcrypt at a fixed cost.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher creates a hasher. Costs outside bcrypt's range fall back
// to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// RegisterServices registers the services the demo fixtures resolve.
func RegisterServices(c di.Container, cost int) error {
	return c.Register(HasherKey, func() PasswordHasher {
		return NewBcryptHasher(cost)
	})
}
