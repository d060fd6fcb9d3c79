package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	handler := Chain(mark("a"), mark("b"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Join(order, ",") != "a,b,handler" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestLoggerMiddlewareSetsRequestID(t *testing.T) {
	var id string
	handler := LoggerMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if id == "" || len(id) != len("20060102150405-")+8 {
		t.Fatalf("unexpected request id %q", id)
	}
	if rr.Code != http.StatusTeapot {
		t.Fatalf("status must pass through, got %d", rr.Code)
	}
}

func TestServerSecurityHeadersAndBodyLimit(t *testing.T) {
	config := DefaultServerConfig()
	config.MaxBodyBytes = 16
	srv := NewServer(config, newTestHandlers(t, 1), nil, nil)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, postJSON("/api/predict/svm_model", blankInputsJSON()))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized body should be rejected, got %d", rr.Code)
	}
}

func TestServerRejectsOversizedForm(t *testing.T) {
	config := DefaultServerConfig()
	config.MaxBodyBytes = 1024
	srv := NewServer(config, newTestHandlers(t, 0), nil, nil)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, postForm("RF_model", map[string]string{
		"Node_ID": "abc",
		"pad":     strings.Repeat("x", 4096),
	}))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "Prediction using ML") || strings.Contains(body, "The node is") {
		t.Fatalf("oversized form must not be scored: %s", body)
	}
}

func TestServerMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok_metric 1\n"))
	})
	srv := NewServer(DefaultServerConfig(), newTestHandlers(t, 1), metrics, nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "ok_metric") {
		t.Fatalf("metrics route not wired: %s", rr.Body.String())
	}
}
