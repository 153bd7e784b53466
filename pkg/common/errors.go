package common

import "fmt"

// ValidationError reports a rejected input: bad file type or size,
// coordinates out of range, or a missing required field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation Error: %s", e.Message)
}

// DecodeError reports an image buffer or metadata block that could not be parsed.
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Decode Error: %s", e.Message)
}

// EncodeError reports a failure to serialize updated metadata back into an image.
type EncodeError struct {
	Message string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("Encode Error: %s", e.Message)
}

func NewValidationError(format string, v ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, v...)}
}

func NewDecodeError(format string, v ...interface{}) error {
	return &DecodeError{Message: fmt.Sprintf(format, v...)}
}

func NewEncodeError(format string, v ...interface{}) error {
	return &EncodeError{Message: fmt.Sprintf(format, v...)}
}
