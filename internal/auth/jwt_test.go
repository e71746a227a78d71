package auth

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const testSecret = "test-secret-at-least-16-chars!!"

// newTestTokenService creates a TokenService with a fixed, known secret so
// tests are deterministic.
func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

// signRaw signs arbitrary claims with the test secret, for forging tokens the
// service itself would never issue.
func signRaw(t *testing.T, c jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}
	return s
}

// =========================================================================
// CONSTRUCTION
// =========================================================================

func TestNewTokenService_ShortSecret(t *testing.T) {
	if _, err := NewTokenService("short", 0); err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}
}

func TestNewTokenService_NegativeTTL(t *testing.T) {
	if _, err := NewTokenService(testSecret, -time.Second); err == nil {
		t.Fatal("NewTokenService() should reject a negative TTL")
	}
}

// A generated key must not be an xid (or two of them): xids leak through
// object keys and token ids, and their timestamp/machine/pid/counter layout
// makes them guessable.
func TestRandomSecret_IsCryptoRandom(t *testing.T) {
	s := RandomSecret()

	raw, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("RandomSecret() = %q is not hex: %v", s, err)
	}
	if len(raw) != randomSecretBytes {
		t.Errorf("RandomSecret() decodes to %d bytes, want %d", len(raw), randomSecretBytes)
	}
	if _, err := xid.FromString(s); err == nil {
		t.Errorf("RandomSecret() = %q decodes as an xid", s)
	}

	// Secrets from one process must not share a prefix the way xids
	// generated in the same second do.
	const prefix = 8
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p := RandomSecret()[:prefix]
		if seen[p] {
			t.Fatalf("two secrets share the prefix %q", p)
		}
		seen[p] = true
	}
}

func TestRandomSecret_LongEnough(t *testing.T) {
	s := RandomSecret()
	if len(s) < minSecretLen {
		t.Fatalf("RandomSecret() length = %d, want >= %d", len(s), minSecretLen)
	}
	if s == RandomSecret() {
		t.Error("RandomSecret() returned the same value twice")
	}
}

// =========================================================================
// GENERATE / VALIDATE
// =========================================================================

func TestGenerate_LooksLikeJWT(t *testing.T) {
	ts := newTestTokenService(t, 0)

	token, err := ts.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if n := strings.Count(token, "."); n != 2 {
		t.Errorf("Generate() token has %d dots, want 2", n)
	}
}

func TestGenerate_TokensAreUnique(t *testing.T) {
	ts := newTestTokenService(t, 0)

	a, _ := ts.Generate()
	b, _ := ts.Generate()
	if a == b {
		t.Error("Generate() returned identical tokens")
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t, 0)

	token, err := ts.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := ts.Validate(token); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_NoTTLNeverExpires(t *testing.T) {
	ts := newTestTokenService(t, 0)
	token, _ := ts.Generate()

	ts.now = func() time.Time { return time.Now().Add(10 * 365 * 24 * time.Hour) }
	if err := ts.Validate(token); err != nil {
		t.Fatalf("Validate() on a TTL-less token years later: %v", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)
	token, _ := ts.Generate()

	ts.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	err := ts.Validate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_TTLRequiresExp(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	token := signRaw(t, jwt.RegisteredClaims{Subject: AdminSubject, Issuer: issuer})
	if err := ts.Validate(token); err == nil {
		t.Fatal("Validate() should reject a token without exp when a TTL is configured")
	}
}

func TestValidate_Rejects(t *testing.T) {
	ts := newTestTokenService(t, 0)
	good, _ := ts.Generate()

	other, _ := NewTokenService("wrong-secret-32-chars-long!!!!!!", 0)
	foreign, _ := other.Generate()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt.token"},
		{"tampered signature", good[:len(good)-3] + "xxx"},
		{"wrong secret", foreign},
		{"wrong subject", signRaw(t, jwt.RegisteredClaims{Subject: "user-1", Issuer: issuer})},
		{"wrong issuer", signRaw(t, jwt.RegisteredClaims{Subject: AdminSubject, Issuer: "someone-else"})},
		{"alg none", func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodNone,
				jwt.RegisteredClaims{Subject: AdminSubject, Issuer: issuer}).
				SignedString(jwt.UnsafeAllowNoneSignatureType)
			return s
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ts.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
