package auth

import "testing"

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	userID, tokenType, err := ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user id 42, got %d", userID)
	}
	if tokenType != TokenTypeAccess {
		t.Errorf("expected access token type, got %q", tokenType)
	}
}

func TestRefreshTokenCarriesRefreshType(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, tokenType, err := ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if tokenType != TokenTypeRefresh {
		t.Errorf("expected refresh token type, got %q", tokenType)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, _, err := ParseToken(token + "x"); err == nil {
		t.Fatal("expected error for tampered token")
	}
}

func TestParseRejectsTokenSignedWithOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, _, err := ParseToken(token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestGenerateFailsWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := GenerateAccessToken(1); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}
