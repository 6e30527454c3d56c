package macros

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adaptfit/macrohub/internal/engine"
)

// HandlePlan handles GET /v1/macros/plan
func HandlePlan(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, err := service.ComputePlan(r.Context())
		if err != nil {
			writeEngineError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(plan)
	}
}

// HandleCheckEntry handles POST /v1/macros/check-entry
func HandleCheckEntry(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CheckEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		unit := engine.Unit(req.Unit)
		if req.Unit == "" {
			unit = engine.UnitLB
		}

		result, err := service.CheckEntry(r.Context(), req.Weight, unit)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(CheckEntryResponse{
			WeightLB:             result.WeightLB,
			ChangeKG:             result.ChangeKG,
			RequiresConfirmation: result.RequiresConfirmation,
			Warning:              result.Warning,
		})
	}
}

func writeEngineError(w http.ResponseWriter, err error) {
	var rangeErr *engine.OutOfRangeError
	var categoryErr *engine.InvalidCategoryError
	var resultErr *engine.InvalidResultError
	var unsafeErr *engine.UnsafeCalorieError
	switch {
	case errors.As(err, &rangeErr):
		writeError(w, http.StatusBadRequest, "out_of_range", rangeErr.Error())
	case errors.As(err, &categoryErr):
		writeError(w, http.StatusBadRequest, "invalid_value", categoryErr.Error())
	case errors.As(err, &unsafeErr):
		writeError(w, http.StatusUnprocessableEntity, "unsafe_calories", unsafeErr.Error())
	case errors.As(err, &resultErr):
		writeError(w, http.StatusUnprocessableEntity, "invalid_result", resultErr.Error())
	case errors.Is(err, ErrProfileNotSet):
		writeError(w, http.StatusNotFound, "profile_not_set", err.Error())
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
