package middlewares_test

import (
	"bytes"
	"compress/gzip"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/5w1tchy/library-admin/internal/api/middlewares"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("success"))
})

func TestRequestID_GeneratesID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mw.GetRequestID(r) == "" {
			t.Error("Expected request ID in context")
		}
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	mw.RequestID(handler).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID in response header")
	}
}

func TestRequestID_UsesProvidedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "custom-request-id")
	rec := httptest.NewRecorder()

	mw.RequestID(okHandler).ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "custom-request-id" {
		t.Errorf("Expected custom-request-id, got %s", got)
	}
}

func TestRequestID_RejectsInvalidID(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "invalid@#$%id")
	rec := httptest.NewRecorder()

	mw.RequestID(okHandler).ServeHTTP(rec, req)

	rid := rec.Header().Get("X-Request-ID")
	if rid == "invalid@#$%id" || rid == "" {
		t.Errorf("Expected a generated request ID, got %q", rid)
	}
}

func TestRecovery_WritesProblem(t *testing.T) {
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	rec := httptest.NewRecorder()
	mw.RequestID(mw.Recovery(panicHandler)).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var p struct {
		Status    int    `json:"status"`
		RequestID string `json:"request_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Status != 500 || p.RequestID == "" {
		t.Errorf("problem = %+v", p)
	}
}

func TestRecovery_PassesNormalRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	mw.Recovery(okHandler).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "success" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestResponseTime(t *testing.T) {
	silent := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, h := range []http.Handler{okHandler, silent} {
		rec := httptest.NewRecorder()
		mw.ResponseTime(h).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))
		if rec.Header().Get("X-Response-Time") == "" {
			t.Error("Expected X-Response-Time header")
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	mw.SecurityHeaders(false)(okHandler).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	tests := []struct {
		header   string
		expected string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"X-XSS-Protection", "1; mode=block"},
		{"Referrer-Policy", "no-referrer"},
		{"Content-Security-Policy", "default-src 'self'"},
		{"Strict-Transport-Security", ""},
		{"Cross-Origin-Opener-Policy", ""},
	}
	for _, tt := range tests {
		if got := rec.Header().Get(tt.header); got != tt.expected {
			t.Errorf("Header %s: expected %q, got %q", tt.header, tt.expected, got)
		}
	}
}

func TestSecurityHeaders_StrictOverTLS(t *testing.T) {
	req := httptest.NewRequest("GET", "https://example.com/test", nil)
	req.TLS = &tls.ConnectionState{}
	rec := httptest.NewRecorder()

	mw.SecurityHeaders(true)(okHandler).ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("Expected HSTS over TLS")
	}
	if rec.Header().Get("Cross-Origin-Opener-Policy") != "same-origin" {
		t.Error("Expected COOP in strict mode")
	}
}

func TestBodySizeLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	wrapped := mw.BodySizeLimit(16)(handler)

	cases := []struct {
		method string
		size   int
		want   int
	}{
		{"POST", 8, http.StatusOK},
		{"POST", 32, http.StatusRequestEntityTooLarge},
		{"PATCH", 32, http.StatusRequestEntityTooLarge},
		{"GET", 32, http.StatusOK},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(c.method, "/test", bytes.NewReader(bytes.Repeat([]byte("a"), c.size)))
		wrapped.ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Errorf("%s %d bytes: got %d, want %d", c.method, c.size, rec.Code, c.want)
		}
	}
}

func TestCors(t *testing.T) {
	wrapped := mw.Cors([]string{"http://admin.local"})(okHandler)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "http://evil.local")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign origin: got %d", rec.Code)
	}

	req = httptest.NewRequest("OPTIONS", "/test", nil)
	req.Header.Set("Origin", "http://admin.local")
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight: got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://admin.local" {
		t.Error("Expected allow-origin echo")
	}
}

func TestCompression(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	mw.Compression(okHandler).ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("Expected gzip encoding")
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(zr)
	if string(body) != "success" {
		t.Errorf("body = %q", body)
	}
}

func TestHPP(t *testing.T) {
	var got string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = r.URL.RawQuery })
	req := httptest.NewRequest("GET", "/test?q=a&q=b&evil=1&tab=active", nil)

	mw.HPP(mw.DefaultHPPWhitelist())(h).ServeHTTP(httptest.NewRecorder(), req)

	if got != "q=a&tab=active" {
		t.Errorf("query = %q", got)
	}
}

func TestLoginRateLimit_NoRedisFailsOpen(t *testing.T) {
	wrapped := mw.LoginRateLimit(nil, 1, 0)(okHandler)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest("POST", "/login", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: got %d", i, rec.Code)
		}
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) mw.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	mw.Chain(okHandler, tag("outer"), tag("inner")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v", order)
	}
}
