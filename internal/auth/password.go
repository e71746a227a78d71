package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Each +1 doubles the hashing time;
// 12 takes roughly 250ms on a modern CPU.
const defaultCost = 12

// ErrNoPassword is returned by Verify when no admin password is configured.
var ErrNoPassword = errors.New("auth: no admin password configured")

// ErrWrongPassword is returned by Verify on a mismatch.
var ErrWrongPassword = errors.New("auth: invalid password")

// PasswordService holds the admin password as a bcrypt hash and checks login
// attempts against it. The plaintext is never kept after construction.
type PasswordService struct {
	cost int
	hash []byte
}

// PasswordOption tunes a PasswordService.
type PasswordOption func(*PasswordService)

// WithCost sets the bcrypt work factor used when hashing a plaintext
// password. Values outside bcrypt's range make NewPasswordService fail.
func WithCost(cost int) PasswordOption {
	return func(p *PasswordService) { p.cost = cost }
}

// NewPasswordService builds the checker from configuration.
//
// hash wins when both are set. With neither set the service is still usable,
// but every Verify fails with ErrNoPassword.
func NewPasswordService(plaintext, hash string, opts ...PasswordOption) (*PasswordService, error) {
	p := &PasswordService{cost: defaultCost}
	for _, opt := range opts {
		opt(p)
	}
	if p.cost < bcrypt.MinCost || p.cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("auth: bcrypt cost %d outside [%d, %d]", p.cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	switch {
	case hash != "":
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("auth: ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
		}
		p.hash = []byte(hash)
	case plaintext != "":
		h, err := p.Hash(plaintext)
		if err != nil {
			return nil, err
		}
		p.hash = []byte(h)
	}
	return p, nil
}

// Configured reports whether a password has been set.
func (p *PasswordService) Configured() bool {
	return len(p.hash) > 0
}

// Hash returns a bcrypt hash of plaintext. bcrypt only looks at the first
// 72 bytes, so longer input is rejected rather than silently truncated.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares candidate against the configured hash in constant time.
func (p *PasswordService) Verify(candidate string) error {
	if !p.Configured() {
		return ErrNoPassword
	}

	err := bcrypt.CompareHashAndPassword(p.hash, []byte(candidate))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongPassword
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
