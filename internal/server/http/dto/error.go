package dto

// ErrorResponse carries a user-visible failure notice.
type ErrorResponse struct {
	Error string `json:"error"`
	// RetryAfterSeconds is set on rate-limit rejections only.
	RetryAfterSeconds int64 `json:"retry_after_seconds,omitempty"`
}
