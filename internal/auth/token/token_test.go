package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	jwt := NewJWT("test-secret", time.Hour)
	userID := uuid.New()

	raw, err := jwt.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if raw == "" {
		t.Fatal("issued token is empty")
	}

	got, err := jwt.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != userID {
		t.Fatalf("Verify returned %s, want %s", got, userID)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWT("secret-a", time.Hour)
	verifier := NewJWT("secret-b", time.Hour)

	raw, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(raw); err == nil {
		t.Fatal("token signed with a different secret should be rejected")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	jwt := NewJWT("test-secret", time.Hour)

	issuedAt := time.Now().Add(-2 * time.Hour)
	jwt.now = func() time.Time { return issuedAt }
	raw, err := jwt.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	jwt.now = time.Now
	if _, err := jwt.Verify(raw); err == nil {
		t.Fatal("expired token should be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	jwt := NewJWT("test-secret", time.Hour)
	if _, err := jwt.Verify("not-a-token"); err == nil {
		t.Fatal("garbage input should be rejected")
	}
}
