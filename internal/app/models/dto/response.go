package dto

import "time"

// APIResponse is the standard response envelope. Every endpoint returns
// this shape: {success, data, message?, error?}.
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse creates a success envelope around data.
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse creates a failure envelope around an error detail.
func NewErrorResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	}
}

// LoginResponse carries the token pair returned on successful login.
type LoginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int         `json:"expiresIn"`
	User         interface{} `json:"user"`
}
