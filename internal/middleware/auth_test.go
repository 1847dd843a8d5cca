package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
)

func testUser() *models.User {
	user := &models.User{Username: "alice"}
	user.ID = "0190b7c2-0000-7000-8000-000000000001"
	return user
}

func performAuthRequest(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	AuthMiddleware()(c)
	return w, c
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid_access_token", func(t *testing.T) {
		user := testUser()
		token, err := GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("failed to generate access token: %v", err)
		}

		w, c := performAuthRequest(t, "Bearer "+token)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if got := c.GetString("userID"); got != user.ID {
			t.Errorf("expected userID %s in context, got %s", user.ID, got)
		}
		if got := c.GetString("username"); got != "alice" {
			t.Errorf("expected username alice in context, got %s", got)
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		w, _ := performAuthRequest(t, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("malformed_header", func(t *testing.T) {
		w, _ := performAuthRequest(t, "Token abc")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		w, _ := performAuthRequest(t, "Bearer not-a-jwt")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("refresh_token_rejected_as_access", func(t *testing.T) {
		token, err := GenerateRefreshToken(testUser())
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}

		w, _ := performAuthRequest(t, "Bearer "+token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401 for refresh token, got %d", w.Code)
		}
	})
}

func TestValidateRefreshToken(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		user := testUser()
		token, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}

		claims, err := ValidateRefreshToken(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("expected user ID %s, got %s", user.ID, claims.UserID)
		}
		if claims.TokenType != "refresh" {
			t.Errorf("expected token type refresh, got %s", claims.TokenType)
		}
	})

	t.Run("access_token_rejected", func(t *testing.T) {
		token, err := GenerateAccessToken(testUser())
		if err != nil {
			t.Fatalf("failed to generate access token: %v", err)
		}

		if _, err := ValidateRefreshToken(token); err == nil {
			t.Error("expected error validating access token as refresh token")
		}
	})

	t.Run("garbage_rejected", func(t *testing.T) {
		if _, err := ValidateRefreshToken("not-a-jwt"); err == nil {
			t.Error("expected error for malformed token")
		}
	})
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-one")
	b := HashToken("token-one")
	c := HashToken("token-two")

	if a != b {
		t.Error("expected identical inputs to hash identically")
	}
	if a == c {
		t.Error("expected different inputs to hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}
}
