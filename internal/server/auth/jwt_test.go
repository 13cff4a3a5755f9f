package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("test-secret")

func TestGenerateToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("acc-1", secret)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	id, err := GetAccountIDFromToken(token, secret)
	if err != nil {
		t.Fatalf("GetAccountIDFromToken error: %v", err)
	}
	if id != "acc-1" {
		t.Fatalf("account id = %q, want %q", id, "acc-1")
	}
}

func TestGenerateToken_NoExpiry(t *testing.T) {
	token, err := GenerateToken("acc-1", secret)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}); err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if claims.ExpiresAt != nil {
		t.Fatalf("token has expiry %v, want none", claims.ExpiresAt)
	}
	if claims.IssuedAt == nil {
		t.Fatal("token has no issued-at")
	}
}

func TestGenerateToken_Distinct(t *testing.T) {
	// Same account, same instant: the jti must still make the tokens differ
	// so each can live as its own entry in the token sequence.
	t1, err := GenerateToken("acc-1", secret)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	t2, err := GenerateToken("acc-1", secret)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if t1 == t2 {
		t.Fatal("two issuances produced identical tokens")
	}

	for _, tok := range []string{t1, t2} {
		id, err := GetAccountIDFromToken(tok, secret)
		if err != nil || id != "acc-1" {
			t.Fatalf("token %q not independently usable: id=%q err=%v", tok, id, err)
		}
	}
}

func TestGetAccountIDFromToken_WrongKey(t *testing.T) {
	token, err := GenerateToken("acc-1", secret)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := GetAccountIDFromToken(token, []byte("other-secret")); err == nil {
		t.Fatal("expected error for token signed with another key")
	}
}

func TestGetAccountIDFromToken_Garbage(t *testing.T) {
	if _, err := GetAccountIDFromToken("not.a.jwt", secret); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
