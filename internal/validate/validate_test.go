package validate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCongressNumber(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantValid bool
		wantValue any
	}{
		{"nil is an optional filter", nil, true, nil},
		{"first congress", 1, true, 1},
		{"current congress", 119, true, 119},
		{"zero rejected", 0, false, nil},
		{"negative rejected", -5, false, nil},
		{"future congress rejected", 120, false, nil},
		{"numeric string accepted", "118", true, 118},
		{"json float accepted", float64(117), true, 117},
		{"fractional float rejected", 117.5, false, nil},
		{"garbage rejected", "one hundred", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CongressNumber(tt.input)
			assert.Equal(t, tt.wantValid, res.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.wantValue, res.Sanitized)
			} else {
				assert.NotEmpty(t, res.Message)
				assert.NotEmpty(t, res.Suggestions)
			}
		})
	}
}

func TestCongressNumberSuggestionsRestateRange(t *testing.T) {
	res := CongressNumber(500)
	require.False(t, res.Valid)

	var found bool
	for _, s := range res.Suggestions {
		if s == fmt.Sprintf("Valid range is %d-%d", MinCongress, MaxCongress) {
			found = true
		}
	}
	assert.True(t, found, "rejection should restate the valid range")
}

func TestYearRange(t *testing.T) {
	assert.True(t, Year(nil).Valid)
	assert.True(t, Year(2024).Valid)
	assert.False(t, Year(1700).Valid)
	assert.False(t, Year(time.Now().Year()+1).Valid)

	// Bound record endpoints narrow the window.
	assert.True(t, YearRange(1950, 1873, 1997).Valid)
	assert.False(t, YearRange(2020, 1873, 1997).Valid)
	assert.False(t, YearRange(1872, 1873, 1997).Valid)
}

func TestMonthAndDay(t *testing.T) {
	assert.True(t, Month(nil).Valid)
	assert.True(t, Month(1).Valid)
	assert.True(t, Month(12).Valid)
	assert.False(t, Month(0).Valid)
	assert.False(t, Month(13).Valid)

	assert.True(t, Day(nil).Valid)
	assert.True(t, Day(31).Valid)
	assert.False(t, Day(0).Valid)
	assert.False(t, Day(32).Valid)
}

func TestDateComponents(t *testing.T) {
	// Each component passes individually, but February has no 30th day.
	res := DateComponents(2023, 2, 30)
	require.False(t, res.Valid)
	assert.Contains(t, res.Message, "2023-02-30")

	// Leap day is a real date.
	res = DateComponents(2024, 2, 29)
	assert.True(t, res.Valid)

	// Non-leap year February 29 is not.
	assert.False(t, DateComponents(2023, 2, 29).Valid)

	// April has 30 days.
	assert.False(t, DateComponents(2024, 4, 31).Valid)

	// Partial dates skip the calendar check.
	assert.True(t, DateComponents(2024, nil, nil).Valid)
	assert.True(t, DateComponents(nil, 2, 30).Valid)

	// Component failures surface first.
	assert.False(t, DateComponents(2024, 13, 1).Valid)
}

func TestLimitRangeClamps(t *testing.T) {
	tests := []struct {
		input any
		want  int
	}{
		{0, 1},
		{-10, 1},
		{1, 1},
		{20, 20},
		{250, 250},
		{251, 250},
		{10000, 250},
	}

	for _, tt := range tests {
		res := LimitRange(tt.input, MaxLimit)
		require.True(t, res.Valid, "limits are always auto-corrected, input %v", tt.input)
		assert.Equal(t, tt.want, res.Sanitized)
	}

	// Clamps carry an informational message; in-range values do not.
	assert.NotEmpty(t, LimitRange(9999, MaxLimit).Message)
	assert.Empty(t, LimitRange(20, MaxLimit).Message)

	// Non-integer input is a hard failure, not a clamp.
	assert.False(t, LimitRange("lots", MaxLimit).Valid)
}

func TestLimitRangeCustomMax(t *testing.T) {
	res := LimitRange(500, 100)
	require.True(t, res.Valid)
	assert.Equal(t, 100, res.Sanitized)
}

func TestBillType(t *testing.T) {
	for _, bt := range []string{"hr", "s", "hjres", "sjres", "hconres", "sconres", "hres", "sres"} {
		res := BillType(bt)
		require.True(t, res.Valid, bt)
		assert.Equal(t, bt, res.Sanitized)
	}

	// Case and whitespace are normalized.
	res := BillType("  HR ")
	require.True(t, res.Valid)
	assert.Equal(t, "hr", res.Sanitized)

	assert.False(t, BillType("house").Valid)
	assert.False(t, BillType("").Valid)
}

func TestAmendmentType(t *testing.T) {
	res := AmendmentType("SAMDT")
	require.True(t, res.Valid)
	assert.Equal(t, "samdt", res.Sanitized)

	assert.True(t, AmendmentType("hamdt").Valid)
	assert.False(t, AmendmentType("amdt").Valid)
}

func TestContentType(t *testing.T) {
	assert.True(t, ContentType("text").Valid)
	assert.True(t, ContentType("Summary").Valid)
	assert.False(t, ContentType("pdf").Valid)
}
