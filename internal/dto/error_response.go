package dto

// ErrorResponse carries a human readable message and a stable error code.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
