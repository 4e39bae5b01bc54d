package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := &AppError{
		Message: "something went wrong",
	}
	if err.Error() != "something went wrong" {
		t.Errorf("expected 'something went wrong', got %v", err.Error())
	}

	wrappedErr := errors.New("underlying error")
	errWithWrap := &AppError{
		Message: "failed operation",
		Err:     wrappedErr,
	}
	expected := "failed operation: underlying error"
	if errWithWrap.Error() != expected {
		t.Errorf("expected %q, got %q", expected, errWithWrap.Error())
	}
	if !errors.Is(errWithWrap, wrappedErr) {
		t.Error("expected wrapped error to be reachable through errors.Is")
	}
}

func TestAppError_Code(t *testing.T) {
	err := &AppError{
		ErrorCode: "ERR_CODE_123",
	}
	if err.Code() != "ERR_CODE_123" {
		t.Errorf("expected ERR_CODE_123, got %v", err.Code())
	}
}

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		want     int
	}{
		{"unsupported schema", NewUnsupportedSchemaError("Unsupported source: FAX", "UNSUPPORTED_SOURCE", nil), ErrorTypeUnsupportedSchema, http.StatusBadRequest},
		{"unsupported role", NewUnsupportedRoleError("Unsupported role"), ErrorTypeUnsupportedRole, http.StatusBadRequest},
		{"validation", NewValidationError("bad input", "INVALID_FIELD", nil), ErrorTypeValidation, http.StatusBadRequest},
		{"extraction", NewRecipeExtractionError("metadata missing", "METADATA_MISSING", nil), ErrorTypeRecipeExtraction, http.StatusUnprocessableEntity},
		{"chat", NewRecipeChatError("metadata missing", "METADATA_MISSING", nil), ErrorTypeRecipeChat, http.StatusUnprocessableEntity},
		{"internal", NewInternalError(errors.New("boom")), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.wantType {
				t.Errorf("expected type %v, got %v", tt.wantType, tt.err.Type)
			}
			if tt.err.StatusCode != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, tt.err.StatusCode)
			}
		})
	}
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	err := NewInternalError(errors.New("database password is hunter2"))
	if err.PublicMessage() != GenericMessage {
		t.Errorf("expected generic message, got %q", err.PublicMessage())
	}

	chatErr := NewRecipeChatError("metadata missing", "METADATA_MISSING", errors.New("cause"))
	if chatErr.PublicMessage() != "metadata missing" {
		t.Errorf("expected 'metadata missing', got %q", chatErr.PublicMessage())
	}
}

func TestClassify(t *testing.T) {
	if Classify(nil) != nil {
		t.Error("expected nil for nil error")
	}

	wrapped := fmt.Errorf("calling strategy: %w", NewUnsupportedRoleError("Unsupported role"))
	appErr := Classify(wrapped)
	if appErr.Type != ErrorTypeUnsupportedRole {
		t.Errorf("expected unsupported role, got %v", appErr.Type)
	}
	if !IsType(wrapped, ErrorTypeUnsupportedRole) {
		t.Error("expected IsType to see through wrapping")
	}

	if !errors.Is(wrapped, ErrUnsupportedRole) {
		t.Error("expected errors.Is to match the role sentinel")
	}
	if errors.Is(wrapped, ErrUnsupportedSchema) {
		t.Error("did not expect a schema sentinel match")
	}

	plain := Classify(errors.New("nil pointer somewhere"))
	if plain.Type != ErrorTypeInternal {
		t.Errorf("expected internal, got %v", plain.Type)
	}
}
