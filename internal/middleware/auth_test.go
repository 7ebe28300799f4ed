package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/tastyshare/backend/internal/types"
)

type stubValidator struct{}

func (stubValidator) ValidateToken(_ context.Context, token string) (*types.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid or expired session")
	}
	return &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "sess-1"},
		UserID:           7,
		Email:            "a@x.com",
		Role:             "user",
	}, nil
}

func sessionRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", mw, func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID, "session_id": session.SessionID})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	router := sessionRouter(AuthMiddleware(stubValidator{}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"missing authorization header"}`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"error":"invalid authorization header format"}`},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, `{"error":"invalid or expired session"}`},
		{"valid token", "Bearer good", http.StatusOK, `{"user_id":7,"session_id":"sess-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	router := sessionRouter(OptionalAuth(stubValidator{}))

	for header, want := range map[string]string{
		"":            `{"anonymous":true}`,
		"Bearer bad":  `{"anonymous":true}`,
		"Bearer good": `{"user_id":7,"session_id":"sess-1"}`,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, want, rr.Body.String(), header)
	}
}
