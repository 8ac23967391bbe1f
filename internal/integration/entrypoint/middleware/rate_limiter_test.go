package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestLimiter(maxAttempts int, window time.Duration, now *time.Time) *RateLimiter {
	rl := NewRateLimiterWithConfig(maxAttempts, window)
	rl.now = func() time.Time { return *now }
	return rl
}

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(3, time.Minute, &now)

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("expected attempt %d to be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("expected fourth attempt to be rejected")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("expected another client to be allowed")
	}

	// One token refills every window/maxAttempts.
	now = now.Add(21 * time.Second)
	if !rl.allow("10.0.0.1") {
		t.Error("expected attempt after refill to be allowed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(5, time.Minute, &now)

	rl.allow("idle")
	now = now.Add(45 * time.Second)
	rl.allow("active")

	now = now.Add(30 * time.Second)
	rl.Cleanup()

	if rl.Len() != 1 {
		t.Fatalf("expected 1 tracked client, got %d", rl.Len())
	}
	if _, ok := rl.visitors["active"]; !ok {
		t.Error("expected active client to be kept")
	}

	rl.Reset()
	if rl.Len() != 0 {
		t.Errorf("expected no tracked clients after reset, got %d", rl.Len())
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "development")
	t.Setenv("E2E_MODE", "")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, time.Minute, &now)

	engine := gin.New()
	engine.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.10:5000"
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	expected := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range expected {
		if statuses[i] != expected[i] {
			t.Errorf("request %d: expected status %d, got %d", i+1, expected[i], statuses[i])
		}
	}
}

func TestRateLimiterMiddlewareSkippedInTests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "test")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, time.Minute, &now)

	engine := gin.New()
	engine.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i+1, rec.Code)
		}
	}
	if rl.Len() != 0 {
		t.Errorf("expected no tracked clients, got %d", rl.Len())
	}
}
