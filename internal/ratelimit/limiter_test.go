package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllow_BurstThenRefill(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 2, Clock: clock})
	defer limiter.Close()

	for i := 0; i < 2; i++ {
		if result := limiter.Allow("203.0.113.10"); !result.Allowed {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}

	result := limiter.Allow("203.0.113.10")
	if result.Allowed {
		t.Fatalf("request over burst should be denied")
	}
	if result.RetryAfter <= 0 || result.RetryAfter > time.Second {
		t.Fatalf("RetryAfter = %s, want within (0, 1s]", result.RetryAfter)
	}

	clock.Advance(time.Second)
	if result := limiter.Allow("203.0.113.10"); !result.Allowed {
		t.Fatalf("request after refill should be allowed")
	}
}

func TestAllow_DeniedRequestsDoNotConsumeTokens(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 1, Clock: clock})
	defer limiter.Close()

	limiter.Allow("client")
	for i := 0; i < 5; i++ {
		if limiter.Allow("client").Allowed {
			t.Fatalf("request %d should be denied", i+1)
		}
	}
	clock.Advance(time.Second)
	if !limiter.Allow("client").Allowed {
		t.Fatalf("denied requests should not push back the refill")
	}
}

func TestAllow_PerClient(t *testing.T) {
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 1, Clock: newMockClock()})
	defer limiter.Close()

	if !limiter.Allow("198.51.100.1").Allowed {
		t.Fatalf("first client should be allowed")
	}
	if !limiter.Allow("198.51.100.2").Allowed {
		t.Fatalf("second client has its own bucket")
	}
	if limiter.Allow("198.51.100.1").Allowed {
		t.Fatalf("first client should be limited")
	}
}

func TestAllow_Disabled(t *testing.T) {
	limiter := New(&Config{Clock: newMockClock()})
	defer limiter.Close()

	for i := 0; i < 100; i++ {
		if !limiter.Allow("client").Allowed {
			t.Fatalf("zero rate should disable limiting")
		}
	}
	if n := limiter.size(); n != 0 {
		t.Fatalf("disabled limiter should not track clients, has %d", n)
	}
}

func TestCleanup_ForgetsIdleClients(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 1, IdleTTL: time.Minute, Clock: clock})
	defer limiter.Close()

	limiter.Allow("a")
	clock.Advance(30 * time.Second)
	limiter.Allow("b")
	clock.Advance(45 * time.Second)

	limiter.cleanup()
	if n := limiter.size(); n != 1 {
		t.Fatalf("size after cleanup = %d, want 1", n)
	}
}

func TestMiddleware(t *testing.T) {
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 1, Clock: newMockClock()})
	defer limiter.Close()

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1/reservations", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(http.MethodPost); rec.Code != http.StatusNoContent {
		t.Fatalf("first POST status = %d, want 204", rec.Code)
	}
	rec := do(http.MethodPost)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("Retry-After = %q, want 1", got)
	}
	for i := 0; i < 5; i++ {
		if rec := do(http.MethodGet); rec.Code != http.StatusNoContent {
			t.Fatalf("GET should bypass limiting, got %d", rec.Code)
		}
	}
}

func TestNew_NilConfig(t *testing.T) {
	limiter := New(nil)
	defer limiter.Close()

	if limiter.config.RequestsPerSecond != 5 || limiter.config.Burst != 10 {
		t.Errorf("New(nil) should use default config, got %+v", limiter.config)
	}
}

func TestLimiter_Close(t *testing.T) {
	limiter := New(nil)

	// Trigger cleanup goroutine
	limiter.Allow("1.2.3.4")

	done := make(chan struct{})
	go func() {
		limiter.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Error("Close() should not hang")
	}
}

func TestConcurrentAccess(t *testing.T) {
	limiter := New(&Config{RequestsPerSecond: 1000, Burst: 50, Clock: newMockClock()})
	defer limiter.Close()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if limiter.Allow("shared").Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	// The clock never advances, so only the burst is granted.
	if allowed != 50 {
		t.Fatalf("allowed = %d, want 50", allowed)
	}
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50", // Rightmost non-private
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1", // Last one when all private
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100", // Uses RemoteAddr, ignores spoofed XFF
		},
		{
			name:       "TrustProxy=false, ignores X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "No headers, RemoteAddr only",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: true,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetClientIP_SpoofingPrevention(t *testing.T) {
	// Attacker sends fake X-Forwarded-For header
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4") // Attacker-supplied
	r.RemoteAddr = "192.168.1.100:54321"       // Real connection

	// With TrustProxy=false, the fake header is ignored
	got := GetClientIP(r, false)
	if got != "192.168.1.100" {
		t.Errorf("Should ignore X-Forwarded-For when TrustProxy=false, got %q", got)
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		// IPv4 private ranges
		{"10.0.0.1", true},
		{"10.255.255.255", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"192.168.255.255", true},
		{"127.0.0.1", true},
		// IPv6 private/reserved
		{"::1", true},
		{"fc00::1", true},
		{"fe80::1", true}, // Link-local
		// IPv4-mapped IPv6 addresses (must match their IPv4 equivalents)
		{"::ffff:10.0.0.1", true},
		{"::ffff:192.168.1.1", true},
		{"::ffff:172.16.0.1", true},
		{"::ffff:127.0.0.1", true},
		{"::ffff:8.8.8.8", false}, // Public IP in IPv4-mapped format
		{"::ffff:1.1.1.1", false}, // Public IP in IPv4-mapped format
		// Public IPs
		{"203.0.113.50", false},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"2001:4860:4860::8888", false}, // Google DNS IPv6
		// Invalid
		{"invalid", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			got := isPrivateIP(tt.ip)
			if got != tt.expected {
				t.Errorf("isPrivateIP(%q) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}
