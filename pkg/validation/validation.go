package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ErrInvalidInput indicates the input failed validation
var ErrInvalidInput = errors.New("invalid input")

// DateLayout is the wire format for target dates.
const DateLayout = "2006-01-02"

// SanitizeString removes potentially dangerous characters and trims whitespace
func SanitizeString(input string) string {
	// Trim whitespace
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters except newline and tab
	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(raw string) (time.Time, error) {
	raw = SanitizeString(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required in YYYY-MM-DD format", ErrInvalidInput)
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format, got %q", ErrInvalidInput, raw)
	}
	return t, nil
}

// ParseIntField parses a required integer query parameter.
func ParseIntField(name, raw string) (int, error) {
	raw = SanitizeString(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing required parameter %q", ErrInvalidInput, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter %q must be an integer, got %q", ErrInvalidInput, name, raw)
	}
	return v, nil
}

// ParseFloatField parses a required numeric query parameter.
func ParseFloatField(name, raw string) (float64, error) {
	raw = SanitizeString(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing required parameter %q", ErrInvalidInput, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter %q must be numeric, got %q", ErrInvalidInput, name, raw)
	}
	return v, nil
}

// ValidateMonth checks that a month is within the calendar domain.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidInput, month)
	}
	return nil
}

// ValidateDayOfWeek checks a Monday=0 weekday index.
func ValidateDayOfWeek(dow int) error {
	if dow < 0 || dow > 6 {
		return fmt.Errorf("%w: day_of_week must be between 0 and 6, got %d", ErrInvalidInput, dow)
	}
	return nil
}
