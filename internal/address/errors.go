package address

import "fmt"

// ============================================================================
// ADDRESS ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.

const (
	codeInvalid     = "invalid"
	codeUnavailable = "unavailable"
)

// ============================================================================
// CONFIGURATION ERROR
// ============================================================================

// ConfigurationError is fatal for a run: nothing can be validated without it.
type ConfigurationError struct {
	Code    string
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ErrorCode returns the error code.
func (e *ConfigurationError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *ConfigurationError) ErrorMessage() string {
	return e.Message
}

// NewConfigurationError creates a configuration error with the given message.
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Code: codeInvalid, Message: message}
}

// ErrMissingAPIKey is returned when the validation service API key is missing.
var ErrMissingAPIKey = NewConfigurationError("GOOGLE_API_KEY is required")

// ============================================================================
// TRANSPORT ERROR
// ============================================================================

// TransportError is a non-200 answer from the validation service.
// The batch skips the row and moves on.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("address validation failed: status %d: %s", e.StatusCode, e.Body)
}

// ErrorCode returns the error code.
func (e *TransportError) ErrorCode() string {
	return codeUnavailable
}

// ErrorMessage returns the user-facing message.
func (e *TransportError) ErrorMessage() string {
	return fmt.Sprintf("Address validation service returned status %d", e.StatusCode)
}
