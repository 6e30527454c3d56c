package macros

// CheckEntryRequest — запрос для POST /v1/macros/check-entry
type CheckEntryRequest struct {
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
}

// CheckEntryResponse — результат проверки без сохранения
type CheckEntryResponse struct {
	WeightLB             float64 `json:"weight_lb"`
	ChangeKG             float64 `json:"change_kg"`
	RequiresConfirmation bool    `json:"requires_confirmation"`
	Warning              string  `json:"warning,omitempty"`
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
