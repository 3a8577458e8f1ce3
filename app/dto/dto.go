package dto

// APIResponse is the envelope every endpoint returns. Data is set on success,
// Error on failure; a response never carries both.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty" validate:"omitempty"`
	Error   any    `json:"error,omitempty" validate:"omitempty"`
}

// ErrorDetail pairs a machine-readable error code with optional context,
// such as per-field validation messages.
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty" validate:"omitempty"`
}
