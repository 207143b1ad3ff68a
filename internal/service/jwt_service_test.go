package service

import (
	"testing"
	"time"
)

func TestJWTService_GenerateParseAccess(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)

	token, err := svc.GenerateAccessToken("u1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 15*time.Minute)
	verifier := NewJWTService("secret-b", 15*time.Minute)

	token, err := issuer.GenerateAccessToken("u1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.ParseAccessToken(token); err == nil {
		t.Fatalf("expected rejection with wrong secret")
	}
}

func TestJWTService_RejectsEmptyToken(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)

	if _, err := svc.ParseAccessToken("  "); err == nil {
		t.Fatalf("expected rejection of empty token")
	}
	if _, err := svc.GenerateAccessToken(""); err == nil {
		t.Fatalf("expected rejection of empty user id")
	}
}
