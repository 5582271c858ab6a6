package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"), time.Hour)

	token, err := manager.Generate("admin", "admin")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenWrongKey(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"), time.Hour)
	other := NewTokenManager([]byte("other-secret"), time.Hour)

	token, err := manager.Generate("admin", "admin")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("Validate() with wrong key expected error")
	}
}

func TestTokenExpired(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"), -time.Minute)

	token, err := manager.Generate("admin", "admin")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := manager.Validate(token); err == nil {
		t.Error("Validate() of expired token expected error")
	}
}

func TestTokenGarbage(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"), time.Hour)
	if _, err := manager.Validate("not-a-token"); err == nil {
		t.Error("Validate() of garbage expected error")
	}
}
