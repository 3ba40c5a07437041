package draft

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why a draft was rejected for submission.
type ErrorCode string

const (
	CodeMissingCustomerName ErrorCode = "MissingCustomerName"
	CodeMissingDescription  ErrorCode = "MissingDescription"
	CodeNoValidLineItems    ErrorCode = "NoValidLineItems"
)

// ValidationError is returned by ValidateForSubmit. Message is the text shown
// next to the form.
type ValidationError struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// Is matches validation errors by code.
func (e *ValidationError) Is(target error) bool {
	var other *ValidationError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

var (
	ErrMissingCustomerName = &ValidationError{
		Code:    CodeMissingCustomerName,
		Field:   "customer_name",
		Message: "Customer name is required.",
	}
	ErrMissingDescription = &ValidationError{
		Code:    CodeMissingDescription,
		Field:   "description",
		Message: "Please describe the overall job or project.",
	}
	ErrNoValidLineItems = &ValidationError{
		Code:    CodeNoValidLineItems,
		Field:   "items",
		Message: "Add at least one valid line item (description, quantity, and price).",
	}
)

// Editing errors. These never come from field contents, only from
// addressing a line or field that does not exist.
var (
	ErrUnknownLineItem = errors.New("draft: unknown line item")
	ErrUnknownField    = errors.New("draft: unknown line item field")
)
