package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	ErrCodeStoreReadFailed      = "STORE_READ_FAILED"
	ErrCodeStoreWriteFailed     = "STORE_WRITE_FAILED"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business error carrying a stable code.
// Two DomainErrors match under errors.Is when their codes are equal.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on the error code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// Wrap returns a copy of e carrying cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Err: cause}
}

// WithMessage returns a copy of e with a more specific message.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message, Err: e.Err}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrValidationFailed     = NewDomainError(ErrCodeValidationFailed, "order validation failed")
	ErrOrderNotFound        = NewDomainError(ErrCodeNotFound, "order not found")
	ErrInvalidTransition    = NewDomainError(ErrCodeInvalidTransition, "status transition not allowed")
	ErrConfirmationRequired = NewDomainError(ErrCodeConfirmationRequired, "returning an order must be confirmed")
	ErrStoreReadFailed      = NewDomainError(ErrCodeStoreReadFailed, "failed to read orders")
	ErrStoreWriteFailed     = NewDomainError(ErrCodeStoreWriteFailed, "failed to write order")
	ErrUnauthorized         = NewDomainError(ErrCodeUnauthorised, "not authorised")
)
