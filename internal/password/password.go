// Package password stores and checks user credentials.
package password

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plain password into its stored form and checks candidates
// against it.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(stored, plain string) bool
}

// New returns the hasher for the named strategy ("bcrypt" or "plaintext").
func New(strategy string, cost int) (Hasher, error) {
	switch strategy {
	case "bcrypt":
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
		}
		return Bcrypt{Cost: cost}, nil
	case "plaintext":
		return Plaintext{}, nil
	default:
		return nil, fmt.Errorf("unknown password strategy %q", strategy)
	}
}

type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), b.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (Bcrypt) Verify(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// Plaintext stores passwords as given. It exists for databases seeded with
// unhashed credentials.
type Plaintext struct{}

func (Plaintext) Hash(plain string) (string, error) { return plain, nil }

func (Plaintext) Verify(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}
