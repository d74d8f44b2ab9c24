package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateRangeInclusive(t *testing.T) {
	rng := DateRange{Start: "2024-03-01", End: "2024-03-31"}

	cases := []struct {
		date string
		in   bool
	}{
		{"2024-03-01", true},  // start boundary
		{"2024-03-15", true},
		{"2024-03-31", true},  // end boundary
		{"2024-04-01", false}, // one past the end
		{"2024-02-29", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.in, rng.Contains(tc.date), "date %s", tc.date)
	}
}

func TestDateRangeOpenEnded(t *testing.T) {
	lower := DateRange{Start: "2024-06-01"}
	assert.True(t, lower.Contains("2024-06-01"))
	assert.True(t, lower.Contains("2030-01-01"))
	assert.False(t, lower.Contains("2024-05-31"))

	upper := DateRange{End: "2024-06-30"}
	assert.True(t, upper.Contains("2020-01-01"))
	assert.False(t, upper.Contains("2024-07-01"))

	assert.True(t, DateRange{}.Contains("1999-12-31"))
}

func TestDateRangeValidate(t *testing.T) {
	assert.NoError(t, DateRange{Start: "2024-01-01", End: "2024-12-31"}.Validate())
	assert.NoError(t, DateRange{}.Validate())
	assert.Error(t, DateRange{Start: "not-a-date"}.Validate())
	assert.Error(t, DateRange{End: "2024-13-40"}.Validate())
}
