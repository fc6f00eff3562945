package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"halo-backend/internal/auth"
)

func setupProtectedRouter(t *testing.T) (*gin.Engine, *auth.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := auth.NewInMemoryUserRepository()
	user := &auth.User{Email: "alice@example.com"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	r := gin.New()
	r.GET("/protected", AuthMiddleware(repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("userID")})
	})
	return r, user
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, _ := setupProtectedRouter(t)

	w := request(router, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Token is missing") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestAuthMiddlewareBadHeaderFormat(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, _ := setupProtectedRouter(t)

	for _, header := range []string{"Token abc", "Bearer", "Bearer a b"} {
		w := request(router, header)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, _ := setupProtectedRouter(t)

	w := request(router, "Bearer not-a-real-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Token is invalid or expired") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, user := setupProtectedRouter(t)

	token, err := auth.GenerateRefreshToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := request(router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid token type") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, _ := setupProtectedRouter(t)

	token, err := auth.GenerateAccessToken(999)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := request(router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User not found") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestAuthMiddlewareAcceptsValidAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, user := setupProtectedRouter(t)

	token, err := auth.GenerateAccessToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := request(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"user_id":1`) {
		t.Errorf("expected the resolved user id in the response, got %s", w.Body.String())
	}
}
