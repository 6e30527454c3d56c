package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase  string
	token    string
	client   = &http.Client{Timeout: 30 * time.Second}
	testDate string

	weightEntryID string
	reportID      string
)

func main() {
	fmt.Println("=== MacroHub E2E Smoke Test ===")
	fmt.Println()

	// Load config from env
	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Println()

	// Test date (today)
	testDate = time.Now().Format("2006-01-02")

	// Run smoke tests
	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Register", testRegister},
		{"Put Profile", testPutProfile},
		{"Create Weight Entry", testCreateWeight},
		{"List Weight Entries", testListWeights},
		{"Weight Stats", testWeightStats},
		{"Macro Plan", testMacroPlan},
		{"Check Entry", testCheckEntry},
		{"Create Report (CSV)", testCreateReport},
		{"List Reports", testListReports},
		{"Download Report", testDownloadReport},
		{"Delete Report", testDeleteReport},
		{"Delete Weight Entry", testDeleteWeight},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	resp, err := doRequest("GET", "/healthz", nil, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testRegister() error {
	// If token already set via env, skip
	if token != "" {
		return nil
	}

	payload := map[string]interface{}{
		"email":    fmt.Sprintf("smoke+%d@example.com", time.Now().UnixNano()),
		"password": "smoke-test-password",
	}

	resp, err := doRequest("POST", "/v1/auth/register", payload, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.AccessToken == "" {
		return fmt.Errorf("empty access token")
	}

	token = result.AccessToken
	return nil
}

func testPutProfile() error {
	payload := map[string]interface{}{
		"weight_lb":      200,
		"height_in":      70,
		"age":            30,
		"sex":            "male",
		"activity_level": "moderate",
		"goal":           "lose",
		"intensity":      "moderate",
		"preferred_unit": "lbs",
	}

	resp, err := doRequest("PUT", "/v1/profile", payload, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testCreateWeight() error {
	payload := map[string]interface{}{
		"date":   testDate,
		"weight": 200,
		"unit":   "lbs",
	}

	resp, err := doRequest("POST", "/v1/weights", payload, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	var result struct {
		Entry struct {
			ID string `json:"id"`
		} `json:"entry"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Entry.ID == "" {
		return fmt.Errorf("no entry id in response")
	}

	weightEntryID = result.Entry.ID
	return nil
}

func testListWeights() error {
	resp, err := doRequest("GET", "/v1/weights", nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if len(result.Entries) == 0 {
		return fmt.Errorf("no entries listed")
	}

	return nil
}

func testWeightStats() error {
	resp, err := doRequest("GET", "/v1/weights/stats", nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testMacroPlan() error {
	resp, err := doRequest("GET", "/v1/macros/plan", nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Calories float64 `json:"calories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Calories <= 0 {
		return fmt.Errorf("non-positive calories: %v", result.Calories)
	}

	return nil
}

func testCheckEntry() error {
	payload := map[string]interface{}{
		"weight": 201,
		"unit":   "lbs",
	}

	resp, err := doRequest("POST", "/v1/macros/check-entry", payload, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testCreateReport() error {
	from := time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	payload := map[string]interface{}{
		"from":   from,
		"to":     testDate,
		"format": "csv",
	}

	resp, err := doRequest("POST", "/v1/reports", payload, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.ID == "" {
		return fmt.Errorf("no report id in response")
	}

	reportID = result.ID
	return nil
}

func testListReports() error {
	resp, err := doRequest("GET", "/v1/reports", nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Reports []json.RawMessage `json:"reports"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if len(result.Reports) == 0 {
		return fmt.Errorf("no reports listed")
	}

	return nil
}

func testDownloadReport() error {
	resp, err := doRequest("GET", "/v1/reports/"+reportID+"/download", nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("empty report body")
	}

	return nil
}

func testDeleteReport() error {
	resp, err := doRequest("DELETE", "/v1/reports/"+reportID, nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusNoContent)
}

func testDeleteWeight() error {
	resp, err := doRequest("DELETE", "/v1/weights/"+weightEntryID, nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusNoContent)
}

// ---- helpers ----

func doRequest(method, path string, payload interface{}, authed bool) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, apiBase+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		addAuth(req)
	}

	return client.Do(req)
}

func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
	return nil
}

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
