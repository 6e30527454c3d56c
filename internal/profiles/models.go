package profiles

import (
	"time"

	"github.com/google/uuid"
)

// ProfileDTO — DTO для API
type ProfileDTO struct {
	UserID        uuid.UUID `json:"user_id"`
	WeightLB      float64   `json:"weight_lb"`
	HeightIn      float64   `json:"height_in"`
	Age           int       `json:"age"`
	Sex           string    `json:"sex"`
	ActivityLevel string    `json:"activity_level"`
	Goal          string    `json:"goal"`
	Intensity     string    `json:"intensity"`
	PreferredUnit string    `json:"preferred_unit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateProfileRequest — запрос для PUT /v1/profile
type UpdateProfileRequest struct {
	WeightLB      float64 `json:"weight_lb"`
	HeightIn      float64 `json:"height_in"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	Intensity     string  `json:"intensity"`
	PreferredUnit string  `json:"preferred_unit"`
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
