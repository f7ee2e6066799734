// Package validation holds the strict input boundary: form fields arrive as
// strings and are parsed into typed values here, collecting per-field
// violations instead of failing on the first problem.
package validation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// NonNegativeInt parses value as an integer >= 0. Missing or malformed input
// records a violation and returns 0.
func NonNegativeInt(field, value string, v Violations) int {
	s := strings.TrimSpace(value)
	if s == "" {
		v[field] = "required"
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v[field] = "must_be_integer"
		return 0
	}
	if n < 0 {
		v[field] = "must_be_non_negative"
		return 0
	}
	return n
}

// PositiveInt parses value as an integer > 0.
func PositiveInt(field, value string, v Violations) int {
	s := strings.TrimSpace(value)
	if s == "" {
		v[field] = "required"
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v[field] = "must_be_integer"
		return 0
	}
	if n <= 0 {
		v[field] = "must_be_positive"
		return 0
	}
	return n
}

// NonNegativeDecimal parses value as a decimal >= 0 (prices).
func NonNegativeDecimal(field, value string, v Violations) decimal.Decimal {
	s := strings.TrimSpace(value)
	if s == "" {
		v[field] = "required"
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		v[field] = "must_be_number"
		return decimal.Zero
	}
	if d.IsNegative() {
		v[field] = "must_be_non_negative"
		return decimal.Zero
	}
	return d
}
