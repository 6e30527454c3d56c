package weights

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// EntryDTO — запись веса для API
type EntryDTO struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	WeightLB  float64   `json:"weight_lb"`
	WeightKG  float64   `json:"weight_kg"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEntryRequest — запрос для POST /v1/weights
type CreateEntryRequest struct {
	Date      string  `json:"date"`
	Weight    float64 `json:"weight"`
	Unit      string  `json:"unit"`
	Confirmed bool    `json:"confirmed"`
}

// CreateEntryResult is either a stored entry or a confirmation request
// when the new weight jumps too far from the latest one.
type CreateEntryResult struct {
	Entry                *EntryDTO `json:"entry,omitempty"`
	RequiresConfirmation bool      `json:"requires_confirmation"`
	ChangeKG             float64   `json:"change_kg,omitempty"`
	Warning              string    `json:"warning,omitempty"`
}

// EntriesResponse — ответ для GET /v1/weights
type EntriesResponse struct {
	Entries []EntryDTO `json:"entries"`
}

// StatsResponse — ответ для GET /v1/weights/stats
type StatsResponse struct {
	Count         int     `json:"count"`
	MinLB         float64 `json:"min_lb"`
	MaxLB         float64 `json:"max_lb"`
	MeanLB        float64 `json:"mean_lb"`
	FirstDate     string  `json:"first_date"`
	LastDate      string  `json:"last_date"`
	FirstLB       float64 `json:"first_lb"`
	LastLB        float64 `json:"last_lb"`
	TotalChangeLB float64 `json:"total_change_lb"`
	TotalChangeKG float64 `json:"total_change_kg"`
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
