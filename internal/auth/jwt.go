// Package auth guards the admin API.
//
// AUTHENTICATION FLOW OVERVIEW:
//  1. The admin page posts the shared password to /api/auth/login
//  2. The password is compared against a bcrypt hash held in memory
//  3. On success the server issues a signed admin token (a JWT)
//  4. The page sends it back as "Authorization: Bearer <token>" on every
//     /api/admin/* request, where RequireAdmin verifies it
//
// There are no user accounts: a valid token simply means "the holder knew the
// admin password". The token subject carries the fixed AdminSubject marker.
//
// JWT STRUCTURE (three base64-encoded parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: {"alg":"HS256","typ":"JWT"}
//	- Payload: {"sub":"admin","iss":"couple-gallery","iat":...,"jti":...}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
//
// The gate verifies the signature without any DB lookup.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const (
	// AdminSubject is the subject every admin token carries.
	AdminSubject = "admin"
	issuer       = "couple-gallery"
	minSecretLen = 16
)

// ErrInvalidToken is returned by Validate for any token the gate must reject.
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenService issues and verifies admin tokens.
//
// ttl == 0 issues tokens without an "exp" claim; they stay valid until the
// secret changes.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService with the given secret and lifetime.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("auth: JWT secret must be at least %d characters", minSecretLen)
	}
	if ttl < 0 {
		return nil, errors.New("auth: token TTL must not be negative")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// randomSecretBytes is the entropy of a generated HMAC key.
const randomSecretBytes = 32

// RandomSecret returns a fresh secret for processes started without
// JWT_SECRET: 32 bytes from crypto/rand, hex encoded. Tokens signed with it
// die with the process.
//
// It must not be derived from xid or anything else that also appears in
// public output (object keys, token ids): xids are a timestamp, machine id,
// pid and counter, all guessable.
func RandomSecret() string {
	b := make([]byte, randomSecretBytes)
	// crypto/rand.Read never returns an error on supported platforms.
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Generate issues a new admin token. Each call produces a distinct token
// because of the random jti.
func (s *TokenService) Generate() (string, error) {
	now := s.now()

	c := jwt.RegisteredClaims{
		Subject:  AdminSubject,
		Issuer:   issuer,
		IssuedAt: jwt.NewNumericDate(now),
		ID:       xid.New().String(),
	}
	if s.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate accepts tokenStr iff the HS256 signature verifies, the issuer
// matches, the subject is AdminSubject and (when present) exp has not passed.
func (s *TokenService) Validate(tokenStr string) error {
	if tokenStr == "" {
		return ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(AdminSubject),
		jwt.WithTimeFunc(s.now),
	}
	if s.ttl > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return s.secret, nil },
		opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
