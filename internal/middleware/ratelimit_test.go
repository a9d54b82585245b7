package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(1000),
		GeneralBurst:    3,
		MutationRate:    rate.Limit(1000),
		MutationBurst:   2,
		CleanupInterval: time.Hour,
	}
}

func doAuthedRequest(handler http.Handler, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
	req = req.WithContext(ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGeneralMiddleware_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		if rec := doAuthedRequest(handler, "user-1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, http.StatusOK)
		}
	}
}

func TestGeneralMiddleware_RejectsOverBurst(t *testing.T) {
	cfg := testRateLimiterConfig()
	cfg.GeneralRate = rate.Limit(0.001) // 補充をほぼ停止
	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		doAuthedRequest(handler, "user-1")
	}
	rec := doAuthedRequest(handler, "user-1")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header should be set")
	}
}

func TestMutationMiddleware_IndependentPerUser(t *testing.T) {
	cfg := testRateLimiterConfig()
	cfg.MutationRate = rate.Limit(0.001)
	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	handler := rl.MutationMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// user-1がバーストを使い切っても、user-2には影響しない
	for i := 0; i < 2; i++ {
		doAuthedRequest(handler, "user-1")
	}
	if rec := doAuthedRequest(handler, "user-1"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("user-1 status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec := doAuthedRequest(handler, "user-2"); rec.Code != http.StatusOK {
		t.Errorf("user-2 status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMutationMiddleware_IndependentFromGeneral(t *testing.T) {
	cfg := testRateLimiterConfig()
	cfg.MutationRate = rate.Limit(0.001)
	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	general := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mutation := rl.MutationMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// 変更系のバーストを使い切る
	for i := 0; i < 2; i++ {
		doAuthedRequest(mutation, "user-1")
	}
	if rec := doAuthedRequest(mutation, "user-1"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("mutation status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// API全般の制限は独立している
	if rec := doAuthedRequest(general, "user-1"); rec.Code != http.StatusOK {
		t.Errorf("general status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRateLimiter_UnauthenticatedRequestRejected(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	cfg := testRateLimiterConfig()
	cfg.CleanupInterval = time.Millisecond
	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	doAuthedRequest(handler, "user-1")

	if rl.GeneralLimiterCount() != 1 {
		t.Fatalf("limiter count = %d, want 1", rl.GeneralLimiterCount())
	}

	// TTL（CleanupIntervalの2倍）経過後にエントリが削除される
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if rl.GeneralLimiterCount() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("expired limiter entry was not cleaned up")
}
