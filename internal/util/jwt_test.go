package util

import (
	"testing"
	"time"
)

const (
	testSessionSecret = "session-secret-for-tests"
	testResetSecret   = "reset-secret-for-tests"
)

func TestGenerateToken_SessionHasNoExpiry(t *testing.T) {
	token, err := GenerateToken(testSessionSecret, 42, "alice", 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(testSessionSecret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user_id = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %q, want alice", claims.Username)
	}
	if claims.ExpiresAt != nil {
		t.Errorf("session token should carry no expiry, got %v", claims.ExpiresAt)
	}
}

func TestGenerateToken_WithTTL(t *testing.T) {
	token, err := GenerateToken(testResetSecret, 7, "", ResetTokenTTL)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(testResetSecret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("reset token should carry an expiry")
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 || remaining > ResetTokenTTL {
		t.Errorf("expiry %v not within 15 minute window", remaining)
	}
}

func TestParseToken_SecretsNotInterchangeable(t *testing.T) {
	sessionToken, err := GenerateToken(testSessionSecret, 1, "alice", 0)
	if err != nil {
		t.Fatalf("generate session token: %v", err)
	}
	resetToken, err := GenerateToken(testResetSecret, 1, "", ResetTokenTTL)
	if err != nil {
		t.Fatalf("generate reset token: %v", err)
	}

	if _, err := ParseToken(testResetSecret, sessionToken); err == nil {
		t.Error("session token verified against reset secret")
	}
	if _, err := ParseToken(testSessionSecret, resetToken); err == nil {
		t.Error("reset token verified against session secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(testResetSecret, 1, "", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseToken(testResetSecret, token); err == nil {
		t.Error("expired token should not parse")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	cases := []string{"", "not-a-token", "a.b.c"}
	for _, tc := range cases {
		if _, err := ParseToken(testSessionSecret, tc); err == nil {
			t.Errorf("ParseToken(%q) should fail", tc)
		}
	}
}
