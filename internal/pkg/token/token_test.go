package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var alice = UserClaims{Username: "alice", FirstName: "Alice", LastName: "Liddell"}

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	raw, err := m.Issue(alice)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %q", claims.Subject)
	}
	if claims.User != alice {
		t.Fatalf("unexpected user claims: %+v", claims.User)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti to be set")
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != time.Hour {
		t.Fatalf("expected 1h lifetime, got %v", ttl)
	}
}

func TestNewManager_DefaultTTL(t *testing.T) {
	m := NewManager("secret", 0)
	if m.ttl != 7*24*time.Hour {
		t.Fatalf("expected 7 day default, got %v", m.ttl)
	}
}

func TestManager_Parse_WrongSecret(t *testing.T) {
	raw, err := NewManager("other", time.Hour).Issue(alice)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewManager("secret", time.Hour).Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestManager_Parse_Expired(t *testing.T) {
	m := NewManager("secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, err := m.Issue(alice)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewManager("secret", time.Hour).Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestManager_Parse_Rejects(t *testing.T) {
	m := NewManager("secret", time.Hour)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}).SignedString([]byte("secret"))
	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	cases := map[string]string{
		"garbage":     "not-a-token",
		"missing exp": noExp,
		"missing sub": noSub,
		"wrong alg":   hs512,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Parse(raw); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
