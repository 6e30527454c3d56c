package profiles

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adaptfit/macrohub/internal/storage/memory"
	"github.com/adaptfit/macrohub/internal/userctx"
	"github.com/google/uuid"
)

func newTestHandler() *Handler {
	return NewHandler(NewService(memory.New()))
}

func authedRequest(t *testing.T, method, path string, userID uuid.UUID, payload interface{}) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	return req.WithContext(userctx.WithUserID(req.Context(), userID.String()))
}

func validUpdateRequest() UpdateProfileRequest {
	return UpdateProfileRequest{
		WeightLB:      200,
		HeightIn:      70,
		Age:           30,
		Sex:           "male",
		ActivityLevel: "moderate",
		Goal:          "lose",
		Intensity:     "moderate",
		PreferredUnit: "lbs",
	}
}

func TestHandleGet(t *testing.T) {
	handler := newTestHandler()
	userID := uuid.New()

	t.Run("NotSetUp", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleGet(w, authedRequest(t, "GET", "/v1/profile", userID, nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("AfterUpdate", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleUpdate(w, authedRequest(t, "PUT", "/v1/profile", userID, validUpdateRequest()))
		if w.Code != http.StatusOK {
			t.Fatalf("update failed: %d %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.HandleGet(w, authedRequest(t, "GET", "/v1/profile", userID, nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp ProfileDTO
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.UserID != userID {
			t.Errorf("expected user_id %s, got %s", userID, resp.UserID)
		}
		if resp.WeightLB != 200 {
			t.Errorf("expected weight_lb 200, got %v", resp.WeightLB)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleGet(w, httptest.NewRequest("GET", "/v1/profile", nil))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", w.Code)
		}
	})
}

func TestHandleUpdate(t *testing.T) {
	handler := newTestHandler()
	userID := uuid.New()

	t.Run("AppliesDefaults", func(t *testing.T) {
		req := validUpdateRequest()
		req.ActivityLevel = ""
		req.Intensity = ""
		req.PreferredUnit = ""

		w := httptest.NewRecorder()
		handler.HandleUpdate(w, authedRequest(t, "PUT", "/v1/profile", userID, req))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp ProfileDTO
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.ActivityLevel != "moderate" {
			t.Errorf("expected default activity_level 'moderate', got '%s'", resp.ActivityLevel)
		}
		if resp.PreferredUnit != "lbs" {
			t.Errorf("expected default preferred_unit 'lbs', got '%s'", resp.PreferredUnit)
		}
	})

	t.Run("WeightOutOfRange", func(t *testing.T) {
		req := validUpdateRequest()
		req.WeightLB = 900

		w := httptest.NewRecorder()
		handler.HandleUpdate(w, authedRequest(t, "PUT", "/v1/profile", userID, req))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp ErrorResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error.Code != "out_of_range" {
			t.Errorf("expected error code 'out_of_range', got '%s'", resp.Error.Code)
		}
	})

	t.Run("UnknownGoal", func(t *testing.T) {
		req := validUpdateRequest()
		req.Goal = "shred"

		w := httptest.NewRecorder()
		handler.HandleUpdate(w, authedRequest(t, "PUT", "/v1/profile", userID, req))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp ErrorResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error.Code != "invalid_value" {
			t.Errorf("expected error code 'invalid_value', got '%s'", resp.Error.Code)
		}
	})

	t.Run("SecondPutOverwrites", func(t *testing.T) {
		req := validUpdateRequest()
		req.WeightLB = 195

		w := httptest.NewRecorder()
		handler.HandleUpdate(w, authedRequest(t, "PUT", "/v1/profile", userID, req))
		if w.Code != http.StatusOK {
			t.Fatalf("update failed: %d %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.HandleGet(w, authedRequest(t, "GET", "/v1/profile", userID, nil))

		var resp ProfileDTO
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.WeightLB != 195 {
			t.Errorf("expected weight_lb 195 after overwrite, got %v", resp.WeightLB)
		}
	})
}
