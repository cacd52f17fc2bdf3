package inventory

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrProductNotFound is returned when the referenced id does not exist.
var ErrProductNotFound = errors.New("product not found")

// Reason classifies why a field was rejected.
type Reason string

const (
	ReasonMissing  Reason = "missing"
	ReasonInvalid  Reason = "invalid"
	ReasonNegative Reason = "negative"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason Reason `json:"reason"`
	// Detail overrides the generic message for an invalid value.
	Detail string `json:"-"`
}

func (e FieldError) String() string {
	switch e.Reason {
	case ReasonMissing:
		return fmt.Sprintf("%s is required", e.Field)
	case ReasonNegative:
		return fmt.Sprintf("%s must not be negative", e.Field)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("%s %s", e.Field, e.Detail)
		}
		return fmt.Sprintf("%s must be a valid number", e.Field)
	}
}

// ValidationError is caller input that failed one or more field constraints.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field was rejected for reason.
func (e *ValidationError) Has(field string, reason Reason) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Reason == reason {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(fe *FieldError) {
	if fe != nil {
		e.Fields = append(e.Fields, *fe)
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
