// Package validate holds the field rules shared by every page editor.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MsgCorrectRequired   = "Correct is required"
	MsgCorrectNotNumber  = "Correct is not a number"
	MsgCorrectOutOfRange = "Correct is out of range"
)

// Required reports whether value is non-empty once surrounding whitespace is
// trimmed.
func Required(value string) bool {
	return validation.Validate(strings.TrimSpace(value), validation.Required) == nil
}

// RequiredMessage is the message attached to a blank field named label.
func RequiredMessage(label string) string {
	return label + " is required"
}

// CorrectNumber checks the 1-based "correct answer" entry of a quiz question
// against the number of answers the question has. The returned error carries
// the user-facing message.
func CorrectNumber(value string, answerCount int) error {
	value = strings.TrimSpace(value)
	return validation.Validate(value,
		validation.Required.Error(MsgCorrectRequired),
		validation.By(func(v any) error {
			n, err := strconv.Atoi(v.(string))
			if err != nil {
				return validation.NewError("quiz.correct.not_number", MsgCorrectNotNumber)
			}
			if n < 1 || n > answerCount {
				return validation.NewError("quiz.correct.out_of_range", MsgCorrectOutOfRange)
			}
			return nil
		}),
	)
}

// Message extracts the user-facing text from a rule error.
func Message(err error) string {
	var verr validation.Error
	if errors.As(err, &verr) {
		return verr.Message()
	}
	return err.Error()
}

// Result is the outcome of validating an editor: pass/fail plus one message
// per offending field key. The zero value is a passing result.
type Result struct {
	keys   []string
	errors map[string]string
}

// Add attaches msg to field and marks the result failed. A second message for
// the same field replaces the first.
func (r *Result) Add(field, msg string) {
	if r.errors == nil {
		r.errors = make(map[string]string)
	}
	if _, ok := r.errors[field]; !ok {
		r.keys = append(r.keys, field)
	}
	r.errors[field] = msg
}

// Require adds RequiredMessage(label) under field when value is blank and
// reports whether the value passed.
func (r *Result) Require(field, label, value string) bool {
	if Required(value) {
		return true
	}
	r.Add(field, RequiredMessage(label))
	return false
}

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r.errors) == 0
}

// Error returns the message attached to field, or "".
func (r Result) Error(field string) string {
	return r.errors[field]
}

// Fields lists the failed field keys in the order they were reported.
func (r Result) Fields() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len is the number of failed fields.
func (r Result) Len() int {
	return len(r.errors)
}

func (r Result) String() string {
	if r.Valid() {
		return "valid"
	}
	parts := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, r.errors[k]))
	}
	return strings.Join(parts, "; ")
}
