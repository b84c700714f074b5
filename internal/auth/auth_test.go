package auth

import (
	"testing"
	"time"

	"photo-booking-api/internal/model"
)

func TestPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("testpass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "testpass123" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword(hash, "testpass123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrongpassword") {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundtrip(t *testing.T) {
	tok, err := MakeToken("c@test.com", model.UserTypeClient, "secret")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := ParseToken(tok, "secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Email != "c@test.com" {
		t.Errorf("email mismatch: %s", claims.Email)
	}
	if claims.UserType != model.UserTypeClient {
		t.Errorf("user type mismatch: %s", claims.UserType)
	}

	// session should last ~24h
	diff := time.Until(claims.ExpiresAt.Time)
	if diff < 23*time.Hour || diff > 25*time.Hour {
		t.Errorf("expected ~24h expiry, got %v", diff)
	}
}

func TestTokenRejection(t *testing.T) {
	tok, _ := MakeToken("p@test.com", model.UserTypePhotographer, "secret")

	if _, err := ParseToken(tok, "wrong-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
	if _, err := ParseToken("not.a.token", "secret"); err == nil {
		t.Error("expected error for garbage token")
	}
	if _, err := ParseToken("", "secret"); err == nil {
		t.Error("expected error for empty token")
	}
}
