package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func limitedRouter(limiter *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func doPost(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBurst(t *testing.T) {
	// one sustained request per minute, burst of 2
	r := limitedRouter(NewRateLimiter(1, 2))

	assert.Equal(t, http.StatusOK, doPost(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, doPost(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost(r, "10.0.0.1").Code)
}

func TestRateLimiterPerIP(t *testing.T) {
	r := limitedRouter(NewRateLimiter(1, 1))

	assert.Equal(t, http.StatusOK, doPost(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost(r, "10.0.0.1").Code)

	// a different client has its own budget
	assert.Equal(t, http.StatusOK, doPost(r, "10.0.0.2").Code)
}

func TestRateLimiterDefaults(t *testing.T) {
	// non-positive settings clamp instead of panicking
	rl := NewRateLimiter(0, -1)
	assert.NotNil(t, rl.limiterFor("10.0.0.1"))
}
