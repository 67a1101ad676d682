/* router_test.go
 * Contains unit tests for router.go, pages.go, middleware.go and metrics.go
 */

package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"horizons-site/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region NewServer tests

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer(Config{Store: store.NewMockStore()})
	assert.Error(t, err)

	_, err = NewServer(Config{Captcha: acceptingCaptcha()})
	assert.Error(t, err)
}

func TestRouter_InvalidOrigins(t *testing.T) {
	cfg := newTestConfig(acceptingCaptcha(), store.NewMockStore())
	cfg.AllowOrigins = []string{"not a url"}

	s, err := NewServer(cfg)
	require.NoError(t, err)

	_, err = s.Router()
	assert.Error(t, err)
}

// endregion

// region Page tests

func TestLandingPage(t *testing.T) {
	router := newDefaultRouter(t, acceptingCaptcha(), store.NewMockStore())

	w := get(router, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "HORIZONS")
	assert.NotContains(t, body, "Stay Updated</h2>")
	assert.NotContains(t, body, testWidgetURL)
}

func TestLandingPage_InterestOpen(t *testing.T) {
	router := newDefaultRouter(t, acceptingCaptcha(), store.NewMockStore())

	w := get(router, "/?interest=open")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Stay Updated</h2>")
	assert.Contains(t, body, `data-sitekey="site-key"`)
	assert.Equal(t, 1, strings.Count(body, `src="`+testWidgetURL+`"`))
}

func TestRegisterPage(t *testing.T) {
	router := newDefaultRouter(t, acceptingCaptcha(), store.NewMockStore())

	w := get(router, "/register")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Register for Horizons")
	assert.Contains(t, body, `<option value="graduated">Already graduated</option>`)
	assert.Contains(t, body, "Intermediate - built projects before")
	assert.Contains(t, body, `id="capycap-captcha"`)
	assert.Equal(t, 1, strings.Count(body, `src="`+testWidgetURL+`"`))
}

// endregion

// region Middleware tests

func TestRequestLogger_SetsRequestID(t *testing.T) {
	router := newDefaultRouter(t, acceptingCaptcha(), store.NewMockStore())

	w := get(router, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	cfg := newTestConfig(acceptingCaptcha(), store.NewMockStore())
	cfg.SubmitRateLimit = 0.001
	cfg.SubmitBurst = 2
	router := newTestRouter(t, cfg)

	for i := 0; i < 2; i++ {
		w := postJSON(router, "/api/verify-captcha", `{"token":"t"}`)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := postJSON(router, "/api/verify-captcha", `{"token":"t"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), msgTooManyRequests)

	// Other clients keep their own budget
	req := httptest.NewRequest(http.MethodPost, "/api/verify-captcha", strings.NewReader(`{"token":"t"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "198.51.100.7:4000"
	other := httptest.NewRecorder()
	router.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimit_PagesNotLimited(t *testing.T) {
	cfg := newTestConfig(acceptingCaptcha(), store.NewMockStore())
	cfg.SubmitRateLimit = 0.001
	cfg.SubmitBurst = 1
	router := newTestRouter(t, cfg)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(router, "/register").Code)
	}
}

func TestIPLimiter_Prune(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newIPLimiter(1, 1)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.allow(fmt.Sprintf("10.0.0.%d", i)))
	}

	now = now.Add(limiterIdleTTL + time.Second)
	l.allow("10.0.0.9")
	l.mu.Lock()
	l.prune(now)
	l.mu.Unlock()

	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "10.0.0.9")
}

func TestIPLimiter_Unlimited(t *testing.T) {
	l := newIPLimiter(0, 0)

	for i := 0; i < 100; i++ {
		require.True(t, l.allow("10.0.0.1"))
	}
}

// endregion

// region Metrics tests

func TestMetrics_ExposesCounters(t *testing.T) {
	router := newDefaultRouter(t, acceptingCaptcha(), store.NewMockStore())

	postJSON(router, "/api/interest-emails", `{"email":"bob@example.com","token":"valid-token"}`)
	postJSON(router, "/api/interest-emails", `{"email":"","token":"valid-token"}`)

	w := get(router, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `horizons_submissions_total{flow="interest",outcome="success"} 1`)
	assert.Contains(t, body, `horizons_submissions_total{flow="interest",outcome="invalid"} 1`)
	assert.Contains(t, body, `horizons_captcha_verifications_total{outcome="success"} 1`)
	assert.Contains(t, body, `horizons_http_request_duration_seconds_count{method="POST",route="/api/interest-emails",status="200"} 1`)
}

// endregion
