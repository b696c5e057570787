package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("expected hashing to succeed, got error: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("expected hash to differ from the password")
	}
	if err := h.Compare(hash, "correct horse"); err != nil {
		t.Fatalf("expected password to match, got error: %v", err)
	}
	if err := h.Compare(hash, "wrong horse"); err == nil {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestNewBcryptHasherFallsBackToDefaultCost(t *testing.T) {
	if h := NewBcryptHasher(100); h.cost != 10 {
		t.Fatalf("expected default cost 10, got %d", h.cost)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("roundtrip-secret", time.Hour)

	token, err := m.Issue(7, "alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("expected token generation to succeed, got error: %v", err)
	}

	viewer, err := m.Parse(token)
	if err != nil {
		t.Fatalf("expected token validation to succeed, got error: %v", err)
	}
	if viewer.UserID != 7 || viewer.Role != domain.RoleAdmin {
		t.Fatalf("unexpected viewer: %+v", viewer)
	}
}

func TestTokenParseRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	valid, err := m.Issue(1, "alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	expired := NewTokenManager("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Issue(1, "alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("issue unsigned: %v", err)
	}

	tests := []struct {
		name  string
		token string
		m     *TokenManager
	}{
		{"other secret", valid, NewTokenManager("other", time.Hour)},
		{"expired", old, m},
		{"unsigned", none, m},
		{"garbage", "not-a-token", m},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
