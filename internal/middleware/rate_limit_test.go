package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/flights", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr.Code
}

func TestRateLimitMiddleware_EnforcesBurst(t *testing.T) {
	handler := RateLimitMiddleware(1, 3)(okHandler())

	for i := 0; i < 3; i++ {
		if code := doRequest(handler, "10.0.0.1:5000"); code != http.StatusOK {
			t.Fatalf("Request %d: expected 200 within burst, got %d", i+1, code)
		}
	}
	if code := doRequest(handler, "10.0.0.1:5000"); code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 past the burst, got %d", code)
	}
}

func TestRateLimitMiddleware_LimitsPerIP(t *testing.T) {
	handler := RateLimitMiddleware(1, 1)(okHandler())

	if code := doRequest(handler, "10.0.0.1:5000"); code != http.StatusOK {
		t.Fatalf("Expected first IP allowed, got %d", code)
	}
	if code := doRequest(handler, "10.0.0.1:5000"); code != http.StatusTooManyRequests {
		t.Errorf("Expected first IP limited, got %d", code)
	}
	if code := doRequest(handler, "10.0.0.2:5000"); code != http.StatusOK {
		t.Errorf("Expected second IP unaffected, got %d", code)
	}
}

func TestRateLimitMiddleware_WhitelistBypasses(t *testing.T) {
	handler := RateLimitMiddleware(1, 1)(okHandler())

	for i := 0; i < 10; i++ {
		if code := doRequest(handler, "127.0.0.1:5000"); code != http.StatusOK {
			t.Fatalf("Request %d: expected whitelisted IP never limited, got %d", i+1, code)
		}
	}
}
