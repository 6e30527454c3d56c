package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adaptfit/macrohub/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                8080,
		AuthRequired:        true,
		JWTSecret:           "test-secret-key-for-testing-only",
		JWTIssuer:           "macrohub-test",
		JWTTTLMinutes:       60,
		ReportsMaxRangeDays: 366,
		Blob:                config.BlobConfig{Mode: config.BlobModeLocal},
	}
}

func TestHealthz(t *testing.T) {
	srv := New(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", resp["status"])
	}
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := New(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

// TestEndToEnd walks the register → profile → weights → plan flow
// through the full middleware chain.
func TestEndToEnd(t *testing.T) {
	srv := New(testConfig())
	handler := srv.handler()

	do := func(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	// Register
	w := do(t, "POST", "/v1/auth/register", "", `{"email":"e2e@example.com","password":"long-enough-pw"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	var authResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&authResp); err != nil {
		t.Fatalf("decode auth response: %v", err)
	}
	token := authResp.AccessToken
	if token == "" {
		t.Fatal("expected non-empty access token")
	}

	// Protected route without token is rejected
	if w := do(t, "GET", "/v1/macros/plan", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("plan without token: expected 401, got %d", w.Code)
	}

	// Plan before the profile is set up
	if w := do(t, "GET", "/v1/macros/plan", token, ""); w.Code != http.StatusNotFound {
		t.Fatalf("plan without profile: expected 404, got %d. Body: %s", w.Code, w.Body.String())
	}

	// Set up a body profile
	w = do(t, "PUT", "/v1/profile", token, `{"weight_lb":200,"height_in":70,"age":30,"sex":"male","activity_level":"moderate","goal":"lose","intensity":"moderate","preferred_unit":"lbs"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put profile: expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	// Log a weight entry
	w = do(t, "POST", "/v1/weights", token, `{"weight":200,"unit":"lbs"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create weight: expected 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	// Plan now resolves
	w = do(t, "GET", "/v1/macros/plan", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("plan: expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	var plan struct {
		Calories float64 `json:"calories"`
	}
	if err := json.NewDecoder(w.Body).Decode(&plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.Calories != 2468 {
		t.Errorf("expected 2468 kcal, got %v", plan.Calories)
	}
}
