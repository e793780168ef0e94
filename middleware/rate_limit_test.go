package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})
	defer rl.Stop()

	assert.NotNil(t, rl)
	assert.Equal(t, 10, rl.config.Requests)
	assert.Equal(t, time.Minute, rl.config.Window)
	assert.NotNil(t, rl.config.KeyFunc)
	assert.Equal(t, "Too many requests. Please try again later.", rl.config.Message)
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	}
	call := func(handler echo.HandlerFunc, ip string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPost, "/generate-pdf", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		return rec, handler(e.NewContext(req, rec))
	}

	t.Run("WithinLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{Requests: 2, Window: time.Second})
		defer rl.Stop()
		handler := rl.Middleware()(ok)

		for i := 0; i < 2; i++ {
			rec, err := call(handler, "10.0.0.1")
			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("ExceededLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: 30 * time.Second, Message: "slow down"})
		defer rl.Stop()
		handler := rl.Middleware()(ok)

		_, err := call(handler, "10.0.0.1")
		assert.NoError(t, err)

		rec, err := call(handler, "10.0.0.1")
		he, isHTTP := err.(*echo.HTTPError)
		assert.True(t, isHTTP)
		assert.Equal(t, http.StatusTooManyRequests, he.Code)
		assert.Equal(t, "slow down", he.Message)
		assert.Equal(t, "30", rec.Header().Get("Retry-After"))

		// Other clients keep their own budget
		_, err = call(handler, "10.0.0.2")
		assert.NoError(t, err)
	})

	t.Run("WindowExpires", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute})
		defer rl.Stop()
		now := time.Now()
		rl.now = func() time.Time { return now }
		handler := rl.Middleware()(ok)

		_, err := call(handler, "10.0.0.1")
		assert.NoError(t, err)
		_, err = call(handler, "10.0.0.1")
		assert.Error(t, err)

		now = now.Add(2 * time.Minute)
		_, err = call(handler, "10.0.0.1")
		assert.NoError(t, err)
	})
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute})
	defer rl.Stop()
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.store["a"] = &rateLimitEntry{count: 1, expiresAt: now.Add(-time.Second)}
	rl.store["b"] = &rateLimitEntry{count: 1, expiresAt: now.Add(time.Second)}
	rl.sweep()

	assert.Len(t, rl.store, 1)
	assert.Contains(t, rl.store, "b")
}

func TestPresetLimiters(t *testing.T) {
	pdf := NewPDFRateLimiter()
	defer pdf.Stop()
	assert.Equal(t, 10, pdf.config.Requests)

	upload := NewUploadRateLimiter()
	defer upload.Stop()
	assert.Equal(t, 30, upload.config.Requests)

	upload.Stop()
}
