// Package api defines the shared JSON response types used by all HTTP handlers.
package api

// ErrorResponse is the generic error payload returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse carries per-field validation messages alongside the
// generic error message, mirroring field-level form errors.
type FieldErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is the payload for successful requests that carry no data.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned on successful login or token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Next         string `json:"next,omitempty"`
}
