package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLimitedRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := gin.New()
	r.POST("/login", RateLimit(rdb, limit, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, mr
}

func hit(r *gin.Engine) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_AllowsUpToLimit(t *testing.T) {
	r, _ := newLimitedRouter(t, 5)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(r), "request %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(r))
}

func TestRateLimit_WindowExpiryResets(t *testing.T) {
	r, mr := newLimitedRouter(t, 2)

	require.Equal(t, http.StatusOK, hit(r))
	require.Equal(t, http.StatusOK, hit(r))
	require.Equal(t, http.StatusTooManyRequests, hit(r))

	mr.FastForward(time.Minute + time.Second)

	assert.Equal(t, http.StatusOK, hit(r))
}

func TestRateLimit_SeparateIPsSeparateBudgets(t *testing.T) {
	r, _ := newLimitedRouter(t, 1)

	require.Equal(t, http.StatusOK, hit(r))
	require.Equal(t, http.StatusTooManyRequests, hit(r))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_FailsOpenWhenRedisDown(t *testing.T) {
	r, mr := newLimitedRouter(t, 1)
	mr.Close()

	// With Redis gone every request passes.
	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusOK, hit(r))
}

func TestRateLimit_NilClientIsNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(nil, 1, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusOK, hit(r))
}
