// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package validation screens untrusted input before it reaches handlers.
// Rejections carry generic reasons only; offending values are never echoed
// back to the caller.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const MaxStringLength = 10_000

var (
	ErrStringTooLong   = errors.New("input exceeds maximum length")
	ErrSuspiciousInput = errors.New("input contains suspicious content")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrNotANumber      = errors.New("value is not a number")
	ErrOutOfRange      = errors.New("value is out of range")
	ErrRequestTooLarge = errors.New("request body too large")
)

// denylist covers the injection shapes screened at the boundary: markup
// capable of script execution, SQL keywords in mutating positions and
// template expansion markers.
var denylist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[^>]*>`),
	regexp.MustCompile(`(?i)</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)union\s+select`),
	regexp.MustCompile(`(?i)insert\s+into`),
	regexp.MustCompile(`(?i)delete\s+from`),
	regexp.MustCompile(`(?i)drop\s+table`),
	regexp.MustCompile(`\$\{[^}]*\}`),
	regexp.MustCompile(`<%[^%]*%>`),
}

// escaper rewrites HTML metacharacters, ampersand first so already escaped
// entities are not double-mangled out of order.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

var emailValidator = validator.New(validator.WithRequiredStructEnabled())

type Validator struct{}

func NewValidator() *Validator {
	return new(Validator)
}

// String screens a free-text value. On success it returns the value trimmed
// and HTML-escaped, ready for storage.
func (v *Validator) String(value string) (string, error) {
	if len(value) > MaxStringLength {
		return "", ErrStringTooLong
	}

	for _, pattern := range denylist {
		if pattern.MatchString(value) {
			return "", ErrSuspiciousInput
		}
	}

	return escaper.Replace(strings.TrimSpace(value)), nil
}

// Email normalizes and structurally checks an address. The normalized form
// (trimmed, lowercased) is what gets stored and compared.
func (v *Validator) Email(value string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "", ErrInvalidEmail
	}

	if err := emailValidator.Var(normalized, "email"); err != nil {
		return "", ErrInvalidEmail
	}

	return normalized, nil
}

// Numeric coerces a value to float64 and checks inclusive bounds.
func (v *Validator) Numeric(value interface{}, min, max float64) (float64, error) {
	var n float64

	switch raw := value.(type) {
	case float64:
		n = raw
	case float32:
		n = float64(raw)
	case int:
		n = float64(raw)
	case int64:
		n = float64(raw)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return 0, ErrNotANumber
		}
		n = parsed
	default:
		return 0, ErrNotANumber
	}

	if n < min || n > max {
		return 0, fmt.Errorf("value must be between %g and %g: %w", min, max, ErrOutOfRange)
	}

	return n, nil
}

// RequestSize checks a declared Content-Length against the ceiling.
func (v *Validator) RequestSize(contentLength, limit int64) error {
	if limit > 0 && contentLength > limit {
		return ErrRequestTooLarge
	}
	return nil
}
