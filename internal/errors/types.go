package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeUnsupportedSchema ErrorType = "UNSUPPORTED_SCHEMA"
	ErrorTypeUnsupportedRole   ErrorType = "UNSUPPORTED_ROLE"
	ErrorTypeRecipeExtraction  ErrorType = "RECIPE_EXTRACTION_ERROR"
	ErrorTypeRecipeChat        ErrorType = "RECIPE_CHAT_ERROR"
	ErrorTypeValidation        ErrorType = "VALIDATION_ERROR"
	ErrorTypeInternal          ErrorType = "INTERNAL_ERROR"
)

// GenericMessage is the only text an unhandled failure ever shows to a caller.
const GenericMessage = "An unexpected error occurred. Please try again later."

// Sentinels for errors.Is checks. An *AppError matches the sentinel of its type.
var (
	ErrUnsupportedSchema = &AppError{Type: ErrorTypeUnsupportedSchema}
	ErrUnsupportedRole   = &AppError{Type: ErrorTypeUnsupportedRole}
	ErrRecipeExtraction  = &AppError{Type: ErrorTypeRecipeExtraction}
	ErrRecipeChat        = &AppError{Type: ErrorTypeRecipeChat}
	ErrValidation        = &AppError{Type: ErrorTypeValidation}
	ErrInternal          = &AppError{Type: ErrorTypeInternal}
)

// AppError represents a structured error for the application
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	ErrorCode  string    `json:"errorCode"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the bare sentinel of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t.Message != "" || t.StatusCode != 0 {
		return false
	}
	return t.Type == e.Type
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// PublicMessage is the message that may leave the service boundary.
// Internal errors never echo their cause.
func (e *AppError) PublicMessage() string {
	if e.Type == ErrorTypeInternal {
		return GenericMessage
	}
	return e.Message
}

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an *AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}

// Classify converts any error into an *AppError. Errors that are not
// already classified become internal errors.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	return NewInternalError(err)
}

// NewUnsupportedSchemaError creates an error for an input or model output
// that does not match any known schema (400)
func NewUnsupportedSchemaError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedSchema,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

// NewUnsupportedRoleError creates an error for a conversation role that has
// no wire representation (400)
func NewUnsupportedRoleError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedRole,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		ErrorCode:  "UNSUPPORTED_ROLE",
	}
}

// NewRecipeExtractionError creates a new recipe extraction error (422)
func NewRecipeExtractionError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeRecipeExtraction,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

// NewRecipeChatError creates a new recipe chat error (422)
func NewRecipeChatError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeRecipeChat,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

// NewInternalError wraps an unanticipated failure (500)
func NewInternalError(err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    "internal error",
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  "INTERNAL_ERROR",
		Err:        err,
	}
}
