package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// ParseOptionalDate parses a nil-able "YYYY-MM-DD" string. Nil or blank input yields nil.
func ParseOptionalDate(dateStr *string) (*time.Time, bool) {
	if dateStr == nil || IsEmpty(*dateStr) {
		return nil, true
	}
	date, ok := IsValidDate(*dateStr)
	if !ok {
		return nil, false
	}
	return &date, true
}

// IsDecimalInRange reports whether min <= v <= max.
func IsDecimalInRange(v, min, max decimal.Decimal) bool {
	return v.GreaterThanOrEqual(min) && v.LessThanOrEqual(max)
}

// HasMaxDecimalPlaces reports whether v needs no more than places fractional digits.
func HasMaxDecimalPlaces(v decimal.Decimal, places int32) bool {
	return v.Equal(v.Truncate(places))
}
