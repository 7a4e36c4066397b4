package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("08:00")
	assert.NoError(t, err)
	assert.Equal(t, "08:00", got)

	got, err = ParseTimeOfDay("8:05")
	assert.NoError(t, err)
	assert.Equal(t, "08:05", got)

	for _, bad := range []string{"", "25:00", "12:60", "noon", "08:00:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDateRange(t *testing.T) {
	start, end, err := ParseDateRange("2024-01-01", "2024-01-10")
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-01", start)
	assert.Equal(t, "2024-01-10", end)

	_, _, err = ParseDateRange("2024-01-10", "2024-01-01")
	assert.Error(t, err)

	_, _, err = ParseDateRange("01/01/2024", "2024-01-10")
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, "start date", valErr.Field)
}
