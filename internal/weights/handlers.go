package weights

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/adaptfit/macrohub/internal/engine"
	"github.com/google/uuid"
)

// HandleCreate handles POST /v1/weights
func HandleCreate(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		result, err := service.CreateEntry(r.Context(), req)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		status := http.StatusCreated
		if result.RequiresConfirmation {
			status = http.StatusConflict
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(result)
	}
}

// HandleList handles GET /v1/weights?from=&to=&order=&limit=
func HandleList(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q ListQuery

		if fromStr := r.URL.Query().Get("from"); fromStr != "" {
			from, err := time.Parse(dateLayout, fromStr)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", "invalid from date, expected YYYY-MM-DD")
				return
			}
			q.From = &from
		}
		if toStr := r.URL.Query().Get("to"); toStr != "" {
			to, err := time.Parse(dateLayout, toStr)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", "invalid to date, expected YYYY-MM-DD")
				return
			}
			q.To = &to
		}

		switch r.URL.Query().Get("order") {
		case "", "asc":
		case "desc":
			q.Descending = true
		default:
			writeError(w, http.StatusBadRequest, "invalid_order", "order must be asc or desc")
			return
		}

		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 0 {
				writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
				return
			}
			q.Limit = limit
		}

		entries, err := service.ListEntries(r.Context(), q)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(EntriesResponse{Entries: entries})
	}
}

// HandleDelete handles DELETE /v1/weights/{id}
func HandleDelete(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := r.PathValue("id")
		if idStr == "" {
			writeError(w, http.StatusBadRequest, "missing_id", "entry id is required")
			return
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_id", "invalid entry id format")
			return
		}

		if err := service.DeleteEntry(r.Context(), id); err != nil {
			if errors.Is(err, ErrEntryNotFound) {
				writeError(w, http.StatusNotFound, "entry_not_found", err.Error())
				return
			}
			writeEngineError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleStats handles GET /v1/weights/stats
func HandleStats(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Stats(r.Context())
		if err != nil {
			if errors.Is(err, ErrNoEntries) {
				writeError(w, http.StatusNotFound, "no_entries", err.Error())
				return
			}
			writeEngineError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(stats)
	}
}

func writeEngineError(w http.ResponseWriter, err error) {
	var rangeErr *engine.OutOfRangeError
	var categoryErr *engine.InvalidCategoryError
	switch {
	case errors.As(err, &rangeErr):
		writeError(w, http.StatusBadRequest, "out_of_range", rangeErr.Error())
	case errors.As(err, &categoryErr):
		writeError(w, http.StatusBadRequest, "invalid_value", categoryErr.Error())
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
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
