package converters

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDateZeroSentinelIsAbsent(t *testing.T) {
	date, err := ToDate("000000")

	require.NoError(t, err)
	assert.Nil(t, date)
}

func TestToDateParsesDDMMYY(t *testing.T) {
	date, err := ToDate("170604")

	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, time.Date(2004, 6, 17, 0, 0, 0, 0, time.UTC), *date)
}

func TestToDateTwoDigitYearPivot(t *testing.T) {
	// 69-99 parse as 19xx, 00-68 as 20xx.
	tests := []struct {
		raw  string
		year int
	}{
		{"010169", 1969},
		{"200192", 1992},
		{"311299", 1999},
		{"010100", 2000},
		{"311268", 2068},
	}
	for _, tt := range tests {
		date, err := ToDate(tt.raw)

		require.NoError(t, err, tt.raw)
		require.NotNil(t, date)
		assert.Equal(t, tt.year, date.Year(), tt.raw)
	}
}

func TestToDateRejectsGarbage(t *testing.T) {
	_, err := ToDate("999999")

	assert.Error(t, err)
}

func TestFormatDateRoundTrips(t *testing.T) {
	for _, raw := range []string{"000000", "170604", "200192", "060417"} {
		date, err := ToDate(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, FormatDate(date))
	}
}

func TestToBoolAcceptsOnlyJAndN(t *testing.T) {
	yes, err := ToBool("J")
	require.NoError(t, err)
	assert.True(t, yes)

	no, err := ToBool("N")
	require.NoError(t, err)
	assert.False(t, no)

	for _, raw := range []string{"j", "n", "Y", "1", "", "JJ"} {
		_, err := ToBool(raw)
		assert.Error(t, err, raw)
	}
}

func TestFormatIntKeepsZeroPaddingWidth(t *testing.T) {
	assert.Equal(t, "0000001", FormatInt(1, 7))
	assert.Equal(t, "00000000000524463", FormatInt64(524463, 17))
}

func TestToSafeStringNormalizes(t *testing.T) {
	assert.Equal(t, "Foo bar", ToSafeString("  Foo bar  "))
	assert.Equal(t, "Foo bar", ToSafeString("Foo\n bar\r"))
	assert.Equal(t, "", ToSafeString("     "))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 5))
}

func TestFromCentsIsExact(t *testing.T) {
	amount := FromCents(524463)

	assert.Equal(t, "5244.63", amount.StringFixed(2))
}

func TestToCentsIsExact(t *testing.T) {
	cents, err := ToCents(decimal.RequireFromString("5244.63"))

	require.NoError(t, err)
	assert.Equal(t, int64(524463), cents)
}

func TestToCentsRejectsSubCentAmounts(t *testing.T) {
	_, err := ToCents(decimal.RequireFromString("1.005"))

	assert.Error(t, err)
}

func TestCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 100, 524463, 99999999999999999} {
		roundTripped, err := ToCents(FromCents(cents))

		require.NoError(t, err)
		assert.Equal(t, cents, roundTripped)
	}
}
