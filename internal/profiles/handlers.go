package profiles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adaptfit/macrohub/internal/engine"
)

// Handler содержит HTTP обработчики для профиля
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGet обрабатывает GET /v1/profile
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.sendError(w, http.StatusNotFound, "not_found", "Profile not set up yet")
		case errors.Is(err, ErrUnauthorized):
			h.sendError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		default:
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to get profile")
		}
		return
	}

	h.sendJSON(w, http.StatusOK, profile)
}

// HandleUpdate обрабатывает PUT /v1/profile
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	profile, err := h.service.UpsertProfile(r.Context(), req)
	if err != nil {
		var rangeErr *engine.OutOfRangeError
		var categoryErr *engine.InvalidCategoryError
		switch {
		case errors.As(err, &rangeErr):
			h.sendError(w, http.StatusBadRequest, "out_of_range", rangeErr.Error())
		case errors.As(err, &categoryErr):
			h.sendError(w, http.StatusBadRequest, "invalid_value", categoryErr.Error())
		case errors.Is(err, ErrUnauthorized):
			h.sendError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		default:
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to save profile")
		}
		return
	}

	h.sendJSON(w, http.StatusOK, profile)
}

// sendJSON отправляет JSON ответ
func (h *Handler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError отправляет ошибку в формате ErrorResponse
func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
