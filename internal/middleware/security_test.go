package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func okRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(1), 2)
	r := okRouter(RateLimitMiddleware(limiter))

	// Burst of 2 passes, the third is refused.
	for i := 0; i < 2; i++ {
		if w := performRequest(r, "/ping"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
	if w := performRequest(r, "/ping"); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", w.Code)
	}
}

func TestRateLimiterTracksPerIP(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(1), 1)

	a := limiter.GetLimiter("10.0.0.1")
	b := limiter.GetLimiter("10.0.0.2")
	if a == b {
		t.Error("distinct IPs must get distinct limiters")
	}
	if again := limiter.GetLimiter("10.0.0.1"); again != a {
		t.Error("same IP must get the same limiter back")
	}
}

func TestRefreshProtectionMiddleware(t *testing.T) {
	r := okRouter(RefreshProtectionMiddleware(30 * time.Minute))

	if w := performRequest(r, "/ping"); w.Code != http.StatusOK {
		t.Fatalf("first trigger: expected 200, got %d", w.Code)
	}
	if w := performRequest(r, "/ping"); w.Code != http.StatusTooManyRequests {
		t.Errorf("second trigger inside the interval: expected 429, got %d", w.Code)
	}
}

func TestRefreshProtectionIntervalElapses(t *testing.T) {
	r := okRouter(RefreshProtectionMiddleware(10 * time.Millisecond))

	performRequest(r, "/ping")
	time.Sleep(20 * time.Millisecond)
	if w := performRequest(r, "/ping"); w.Code != http.StatusOK {
		t.Errorf("trigger after the interval: expected 200, got %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := okRouter(SecurityHeaders())

	w := performRequest(r, "/ping")
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("expected X-Frame-Options DENY, got %q", got)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
}

func TestAdminKeyMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(AdminKeyMiddleware("segredo"))
	r.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := performRequest(r, "/admin")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing key: expected 401, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Admin-Key", "segredo")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid key: expected 200, got %d", rec.Code)
	}

	if w := performRequest(r, "/admin?admin_key=segredo"); w.Code != http.StatusOK {
		t.Errorf("query key: expected 200, got %d", w.Code)
	}
}
