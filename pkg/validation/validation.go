// Package validation runs ordered field and object rules against candidate
// input before any write happens.
//
// Field rules run first, in registration order. A field stops collecting
// after its first failure. Object rules run only when every field passed and
// stop at their first failure, which is reported under NonFieldErrors.
// A rule that returns anything other than a *Failure aborts the run and the
// error is returned as is.
package validation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/amirasaad/vmadmin/pkg/domain"
)

// NonFieldErrors is the key used for object-level failures.
const NonFieldErrors = "non_field_errors"

const (
	MsgRequired  = "This field is required."
	msgMaxLength = "Ensure this field has no more than %d characters."
)

// Failure is a rule rejecting its input with a human-readable message.
type Failure struct {
	Message string
}

func (f *Failure) Error() string { return f.Message }

// Fail returns a Failure carrying msg.
func Fail(msg string) error {
	return &Failure{Message: msg}
}

// Failf returns a Failure with a formatted message.
func Failf(format string, args ...any) error {
	return &Failure{Message: fmt.Sprintf(format, args...)}
}

// Error aggregates failures by field name.
type Error struct {
	Fields map[string][]string
}

// NewError builds an Error with a single message for field.
func NewError(field, msg string) *Error {
	return &Error{Fields: map[string][]string{field: {msg}}}
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, domain.ErrValidation) match.
func (e *Error) Unwrap() error { return domain.ErrValidation }

// Messages returns the failures recorded for field.
func (e *Error) Messages(field string) []string {
	return e.Fields[field]
}

// Rule checks one aspect of the input.
type Rule func(ctx context.Context) error

type fieldRule struct {
	field string
	rule  Rule
}

// Validator is an ordered list of rules.
type Validator struct {
	fields []fieldRule
	object []Rule
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Field appends a rule for field.
func (v *Validator) Field(field string, rule Rule) *Validator {
	v.fields = append(v.fields, fieldRule{field: field, rule: rule})
	return v
}

// Object appends a rule that looks at the input as a whole.
func (v *Validator) Object(rule Rule) *Validator {
	v.object = append(v.object, rule)
	return v
}

// Validate evaluates the rules. It returns nil, a *Error, or the first
// unexpected error raised by a rule.
func (v *Validator) Validate(ctx context.Context) error {
	failed := make(map[string][]string)
	for _, fr := range v.fields {
		if _, done := failed[fr.field]; done {
			continue
		}
		if err := fr.rule(ctx); err != nil {
			var f *Failure
			if !errors.As(err, &f) {
				return err
			}
			failed[fr.field] = append(failed[fr.field], f.Message)
		}
	}
	if len(failed) > 0 {
		return &Error{Fields: failed}
	}

	for _, rule := range v.object {
		if err := rule(ctx); err != nil {
			var f *Failure
			if !errors.As(err, &f) {
				return err
			}
			return NewError(NonFieldErrors, f.Message)
		}
	}
	return nil
}

// Required fails with MsgRequired when value is blank.
func Required(value string) Rule {
	return func(context.Context) error {
		if strings.TrimSpace(value) == "" {
			return Fail(MsgRequired)
		}
		return nil
	}
}

// MaxLength fails when value has more than n characters.
func MaxLength(value string, n int) Rule {
	return func(context.Context) error {
		if len([]rune(value)) > n {
			return Failf(msgMaxLength, n)
		}
		return nil
	}
}

// Is reports whether err carries a failure for field.
func Is(err error, field string) bool {
	var verr *Error
	if !errors.As(err, &verr) {
		return false
	}
	return len(verr.Fields[field]) > 0
}
