package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-critiquer/internal/critiques"
	"resume-critiquer/internal/extractions"
	"resume-critiquer/internal/llm"
	"resume-critiquer/internal/shared/config"
)

func newRouterForTest(t *testing.T) http.Handler {
	t.Helper()
	svc := critiques.NewService(critiques.NewMemoryRepo(), llm.PlaceholderClient{})
	return NewRouter(RouterDeps{
		Config: config.Config{
			Env:             "dev",
			CORSAllowOrigin: []string{"http://localhost:5173"},
		},
		CritiqueHandler:   critiques.NewHandler(svc),
		ExtractionHandler: extractions.NewHandler(nil),
	})
}

func TestHealthRequiresNoIdentity(t *testing.T) {
	r := newRouterForTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	r := newRouterForTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "critique_started_total") {
		t.Fatalf("metrics output missing counters: %s", resp.Body.String())
	}
}

func TestCritiquesRequireIdentity(t *testing.T) {
	r := newRouterForTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/critiques", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
}

func TestGuestHistoryRequiresLogin(t *testing.T) {
	r := newRouterForTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/critiques", nil)
	req.Header.Set("X-Guest-Id", "g1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest history, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "login_required") {
		t.Fatalf("expected login_required, got %s", resp.Body.String())
	}
}

func TestPreflightAllowed(t *testing.T) {
	r := newRouterForTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/critiques", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin = %q", got)
	}
}

func TestAddr(t *testing.T) {
	if got := Addr(""); got != ":8080" {
		t.Fatalf("Addr(\"\") = %q", got)
	}
	if got := Addr("9090"); got != ":9090" {
		t.Fatalf("Addr(9090) = %q", got)
	}
	if got := Addr(":7000"); got != ":7000" {
		t.Fatalf("Addr(:7000) = %q", got)
	}
}
