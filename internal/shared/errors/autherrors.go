package errors

import (
	"fmt"
	"net/http"
)

// Credential-specific error types. Expired credentials are routine (clients
// re-authenticate daily); malformed ones may indicate tampering.
const (
	ErrorTypeTokenExpired ErrorType = "token_expired"
	ErrorTypeTokenInvalid ErrorType = "token_invalid"
)

// NewTokenExpiredError creates an error for an expired credential.
func NewTokenExpiredError(tokenType string) *AppError {
	return &AppError{
		Type:    ErrorTypeTokenExpired,
		Message: fmt.Sprintf("%s has expired", tokenType),
		Code:    http.StatusUnauthorized,
		Details: "request a new identity",
	}
}

// NewTokenInvalidError creates an error for a malformed or forged credential.
func NewTokenInvalidError(tokenType string) *AppError {
	return &AppError{
		Type:    ErrorTypeTokenInvalid,
		Message: fmt.Sprintf("invalid %s", tokenType),
		Code:    http.StatusUnauthorized,
		Details: "token is invalid or malformed",
	}
}
