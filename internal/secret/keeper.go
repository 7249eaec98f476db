package secret

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_keeper.go github.com/maxsrimongkol-lgtm/study-buddy/internal/secret Keeper

// Keeper decides how a session's secret key is stored and checked
type Keeper interface {
	// Seal turns the key the creator typed into the form that is stored on the session
	Seal(plain string) (string, error)

	// Match reports whether supplied unlocks a session whose stored key is stored
	Match(stored, supplied string) bool
}

// Scheme names a Keeper implementation in configuration
type Scheme string

const (
	SchemePlain  Scheme = "plain"
	SchemeBcrypt Scheme = "bcrypt"
)

var ErrUnknownScheme = errors.New("unknown key scheme")

// New returns the keeper for scheme
func New(scheme Scheme) (Keeper, error) {
	switch scheme {
	case SchemePlain, "":
		return Plain{}, nil
	case SchemeBcrypt:
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

// Plain stores the key as typed and matches on exact equality
type Plain struct{}

func (Plain) Seal(plain string) (string, error) {
	return plain, nil
}

func (Plain) Match(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// bcryptMaxKey is the longest input bcrypt accepts
const bcryptMaxKey = 72

// Bcrypt stores a bcrypt hash of the key. Keys longer than bcrypt accepts are
// reduced to their hex SHA-256 digest first, on both Seal and Match.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Seal(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret key: %w", err)
	}
	return string(hash), nil
}

func (Bcrypt) Match(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), bcryptInput(supplied)) == nil
}

func bcryptInput(key string) []byte {
	if len(key) <= bcryptMaxKey {
		return []byte(key)
	}
	sum := sha256.Sum256([]byte(key))
	return []byte(hex.EncodeToString(sum[:]))
}
