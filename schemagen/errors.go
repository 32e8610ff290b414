package schemagen

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/graphql"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/provider"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeUsage            ErrorCode = "usage_error"
	CodeInvalidConfig    ErrorCode = "invalid_config"
	CodeSourceRead       ErrorCode = "source_read_error"
	CodeSourceSyntax     ErrorCode = "source_syntax_error"
	CodeNoDefinitions    ErrorCode = "no_definitions_found"
	CodeSchemaParse      ErrorCode = "schema_parse_error"
	CodeWrite            ErrorCode = "write_error"
	CodeCanceled         ErrorCode = "canceled"
	CodeDeadlineExceeded ErrorCode = "deadline_exceeded"
	CodeInternal         ErrorCode = "internal"
)

// Error is the error type returned by Generate and Check.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying cause, if any.
	Err error `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func wrapError(code ErrorCode, err error) *Error {
	return &Error{
		Code:    code,
		Message: err.Error(),
		Err:     err,
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	return e.WithDetails(map[string]any{key: value})
}

// WithDetails returns a new Error with the provided map merged into details.
// The receiver is not modified.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	out := *e
	out.Details = make(map[string]any, len(e.Details)+len(details))
	maps.Copy(out.Details, e.Details)
	maps.Copy(out.Details, details)
	return &out
}

// Classify maps an error from any pipeline stage to an *Error.
// It returns nil for a nil error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Code: CodeDeadlineExceeded, Message: "deadline exceeded", Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Code: CodeCanceled, Message: "context canceled", Err: err}
	}

	var readErr *provider.ReadError
	if errors.As(err, &readErr) {
		return wrapError(CodeSourceRead, err).WithDetail("path", readErr.Path)
	}

	var synErr *provider.SyntaxError
	if errors.As(err, &synErr) {
		return wrapError(CodeSourceSyntax, err).WithDetails(map[string]any{
			"line":   synErr.Line,
			"column": synErr.Column,
		})
	}

	if errors.Is(err, graphql.ErrNoDefinitionsFound) {
		return wrapError(CodeNoDefinitions, err)
	}

	if errors.Is(err, graphql.ErrSchemaParse) {
		return wrapError(CodeSchemaParse, err)
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		details := make(map[string]any)
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msg := formatValidationError(ve)
			details[ve.Field()] = msg
			messages = append(messages, ve.Field()+": "+msg)
		}
		return &Error{
			Code:    CodeUsage,
			Message: strings.Join(messages, "; "),
			Details: details,
			Err:     err,
		}
	}

	// errors.Join: the first error decides the code, all messages are kept.
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		errs := u.Unwrap()
		if len(errs) > 0 {
			first := Classify(errs[0])
			msgs := make([]string, len(errs))
			for i, e := range errs {
				msgs[i] = e.Error()
			}
			return &Error{
				Code:    first.Code,
				Message: strings.Join(msgs, "; "),
				Details: first.Details,
				Err:     err,
			}
		}
	}

	return wrapError(CodeInternal, err)
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "alphanum":
		return "must contain only letters and digits"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
