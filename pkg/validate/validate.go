// Package validate holds the stateless field constraint rules shared by every
// domain entity. The functions know nothing about entities; they take a field
// label purely for error messages, which keeps the rule set reusable and
// independently testable.
package validate

import (
	"strings"
	"time"
	"unicode/utf8"

	dErrors "daybook/pkg/domain-errors"
)

// NotBlank fails when value is empty or all-whitespace.
func NotBlank(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return dErrors.Newf(dErrors.CodeValidation, "%s must not be blank", field)
	}
	return nil
}

// Length fails when the trimmed length of value falls outside [min, max].
// Blank values are rejected with the NotBlank message so callers get the
// most specific diagnosis first.
func Length(value, field string, min, max int) error {
	if err := NotBlank(value, field); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(value)); n < min || n > max {
		return dErrors.Newf(dErrors.CodeValidation, "%s length must be between %d and %d", field, min, max)
	}
	return nil
}

// Digits fails unless value is exactly n characters, all ASCII digits.
// No trimming is applied: a phone number with padding is malformed, not
// sloppy input.
func Digits(value, field string, n int) error {
	if err := NotBlank(value, field); err != nil {
		return err
	}
	if len(value) != n {
		return dErrors.Newf(dErrors.CodeValidation, "%s must be exactly %d numeric digits", field, n)
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return dErrors.Newf(dErrors.CodeValidation, "%s must be exactly %d numeric digits", field, n)
		}
	}
	return nil
}

// NotPast fails when instant is the zero time or strictly earlier than now.
// The comparison is instant against instant with no day truncation; "now" is
// supplied by the caller so a whole request observes one clock reading.
func NotPast(instant time.Time, field string, now time.Time) error {
	if instant.IsZero() {
		return dErrors.Newf(dErrors.CodeValidation, "%s is required", field)
	}
	if instant.Before(now) {
		return dErrors.Newf(dErrors.CodeValidation, "%s must not be in the past", field)
	}
	return nil
}
