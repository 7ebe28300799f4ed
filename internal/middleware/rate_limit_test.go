package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterIsAllowed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	for name, rl := range map[string]*RateLimiter{
		"redis":  NewLoginRateLimiter(client, 2, time.Minute),
		"memory": NewLoginRateLimiter(nil, 2, time.Minute),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			allowed, remaining, _, err := rl.IsAllowed(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, 1, remaining)

			allowed, remaining, _, err = rl.IsAllowed(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, 0, remaining)

			allowed, _, reset, err := rl.IsAllowed(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.False(t, allowed)
			assert.True(t, reset.After(time.Now().Add(-time.Second)))

			allowed, _, _, err = rl.IsAllowed(ctx, "5.6.7.8")
			require.NoError(t, err)
			assert.True(t, allowed, "other clients have their own window")
		})
	}
}

func TestRateLimiterWindowRolls(t *testing.T) {
	rl := NewLoginRateLimiter(nil, 1, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 10, 0, time.UTC)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	allowed, _, _, err := rl.IsAllowed(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, _, err = rl.IsAllowed(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, allowed)

	now = now.Add(time.Minute)
	allowed, _, _, err = rl.IsAllowed(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestClientIPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", NewLoginRateLimiter(nil, 1, time.Minute).ClientIPMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "too many attempts")
}

func TestClientIPMiddlewareFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", NewLoginRateLimiter(client, 1, time.Minute).ClientIPMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
}
