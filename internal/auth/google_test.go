package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerifyGoogleToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"google-123","email":"alice@example.com","name":"Alice","picture":"https://example.com/a.png"}`))
	}))
	defer server.Close()

	original := googleUserInfoURL
	googleUserInfoURL = server.URL
	defer func() { googleUserInfoURL = original }()

	info, err := VerifyGoogleToken(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.GoogleID != "google-123" || info.Email != "alice@example.com" {
		t.Errorf("unexpected user info: %+v", info)
	}

	if _, err := VerifyGoogleToken(context.Background(), "bad-token"); err == nil {
		t.Fatal("expected error for rejected token")
	}
}

func TestVerifyGoogleTokenRequiresSubAndEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Alice"}`))
	}))
	defer server.Close()

	original := googleUserInfoURL
	googleUserInfoURL = server.URL
	defer func() { googleUserInfoURL = original }()

	if _, err := VerifyGoogleToken(context.Background(), "token"); err == nil {
		t.Fatal("expected error for userinfo without sub and email")
	}
}
