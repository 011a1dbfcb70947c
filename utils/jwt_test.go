package utils

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestAccessTokenRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken("worker@example.com", "worker", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if email, _ := claims["email"].(string); email != "worker@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	if role, _ := claims["role"].(string); role != "worker" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatal("expected non-empty jti")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken("worker@example.com", "worker", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateAccessToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken("worker@example.com", "worker", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	t.Setenv("JWT_SECRET", "different-secret")
	if _, err := ValidateAccessToken(token); err == nil {
		t.Fatal("expected token signed with old secret to be rejected")
	}
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.local/", nil)
	if _, err := TokenFromRequest(r); err == nil {
		t.Fatal("expected error when no token present")
	}

	r = httptest.NewRequest("GET", "http://example.local/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	tok, err := TokenFromRequest(r)
	if err != nil || tok != "abc123" {
		t.Fatalf("bearer extraction failed: %q %v", tok, err)
	}
}

func TestTokenFromRequestPrefersCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.local/", nil)
	r.Header.Set("Cookie", SessionCookieName+"=cookietoken")
	r.Header.Set("Authorization", "Bearer headertoken")
	tok, err := TokenFromRequest(r)
	if err != nil || tok != "cookietoken" {
		t.Fatalf("expected cookie token to win, got %q %v", tok, err)
	}
}
