package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "valid date", input: "2025-12-06", want: time.Date(2025, time.December, 6, 0, 0, 0, 0, time.UTC)},
		{name: "whitespace trimmed", input: "  2025-07-04 ", want: time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong format", input: "06/12/2025", wantErr: true},
		{name: "invalid month", input: "2025-13-01", wantErr: true},
		{name: "not a date", input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntField(t *testing.T) {
	v, err := ParseIntField("month", "7")
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = ParseIntField("month", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseIntField("month", "seven")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseFloatField(t *testing.T) {
	v, err := ParseFloatField("avg_adr", "120.5")
	require.NoError(t, err)
	assert.Equal(t, 120.5, v)

	_, err = ParseFloatField("avg_adr", "lots")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateMonth(t *testing.T) {
	for m := 1; m <= 12; m++ {
		assert.NoError(t, ValidateMonth(m))
	}
	assert.ErrorIs(t, ValidateMonth(0), ErrInvalidInput)
	assert.ErrorIs(t, ValidateMonth(13), ErrInvalidInput)
	assert.ErrorIs(t, ValidateMonth(-1), ErrInvalidInput)
}

func TestValidateDayOfWeek(t *testing.T) {
	for d := 0; d <= 6; d++ {
		assert.NoError(t, ValidateDayOfWeek(d))
	}
	assert.ErrorIs(t, ValidateDayOfWeek(-1), ErrInvalidInput)
	assert.ErrorIs(t, ValidateDayOfWeek(7), ErrInvalidInput)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "ab", SanitizeString("a\x00b"))
	assert.Equal(t, "a\nb", SanitizeString("a\nb"))
}
