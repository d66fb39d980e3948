package errs

import (
	"fmt"
	"sort"
	"strings"
)

// Error codes carried by EligibilityError.
const (
	CodeRequireIsDomestic           = 1
	CodeExpressOnlyInDomesticRegion = 2
)

// ValidationError reports one or more invalid or missing input fields.
// The transport layer renders it as a 400 with a field -> [messages] body.
type ValidationError struct {
	Code   int
	Fields map[string][]string
}

func NewValidationError(code int, fields map[string][]string) *ValidationError {
	return &ValidationError{Code: code, Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		parts = append(parts, field+": "+strings.Join(messages, " "))
	}
	sort.Strings(parts)

	return "validation failed: " + strings.Join(parts, "; ")
}

// EligibilityError reports a shipping business-rule violation. Code 1 means a
// prerequisite flag is missing, code 2 means express was requested for a
// non-domestic region.
type EligibilityError struct {
	Code    int
	Field   string
	Message string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("eligibility (code %d): %s", e.Code, e.Message)
}

// NotFoundError reports an unknown customer, order or product.
// Rendered as a 404 with a field -> message body.
type NotFoundError struct {
	Field   string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Field + ": " + e.Message
}

// StateError reports an operation attempted in a forbidden order state, such
// as completing an order without products or mutating a completed order.
type StateError struct {
	Field   string
	Message string
}

func (e *StateError) Error() string {
	return e.Field + ": " + e.Message
}

// CreationError reports that draft-order creation did not yield a persisted
// record.
type CreationError struct {
	Field   string
	Message string
}

func (e *CreationError) Error() string {
	return e.Field + ": " + e.Message
}
