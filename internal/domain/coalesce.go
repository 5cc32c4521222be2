package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StrFromPtrWithDefault returns the first non-nil *string value, or the fallback.
func StrFromPtrWithDefault(fallback string, ptrs ...*string) string {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// BoolFromPtrWithDefault returns the first non-nil *bool value, or the fallback.
func BoolFromPtrWithDefault(fallback bool, ptrs ...*bool) bool {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// DecimalFromPtrWithDefault parses the first non-nil *string as a decimal,
// or returns the fallback when no pointer is set or parsing fails.
func DecimalFromPtrWithDefault(fallback decimal.Decimal, ptrs ...*string) decimal.Decimal {
	for _, p := range ptrs {
		if p == nil {
			continue
		}
		d, err := decimal.NewFromString(*p)
		if err != nil {
			continue
		}
		return d
	}
	return fallback
}

// TimeFromPtrWithDefault parses the first non-nil *string as RFC3339,
// or returns the fallback when no pointer is set or parsing fails.
func TimeFromPtrWithDefault(fallback time.Time, ptrs ...*string) time.Time {
	for _, p := range ptrs {
		if p == nil {
			continue
		}
		t, err := time.Parse(time.RFC3339, *p)
		if err != nil {
			continue
		}
		return t.UTC()
	}
	return fallback
}

// TimePtrFromStr parses an optional RFC3339 string into an optional time.
// Invalid or missing input yields nil.
func TimePtrFromStr(p *string) *time.Time {
	if p == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *p)
	if err != nil {
		return nil
	}
	u := t.UTC()
	return &u
}
