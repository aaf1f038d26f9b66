// =============================================================================
// OCR Giro Codec - Field Converters
// =============================================================================
//
// This module holds the pure functions that coerce raw fixed-width field
// text to typed values, and the inverse formatters. Every converter is a
// total function over the (already width-constrained) raw string it
// receives, and each converter/formatter pair round-trips exactly, except
// for the documented lossy normalizations:
//   - leading/trailing spaces are trimmed
//   - embedded newlines are stripped from free text
//   - empty/whitespace-only strings collapse to the absent value
//
// =============================================================================

package converters

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is Go's reference time in DDMMYY form. The two-digit year
// pivots at 69: 69-99 parse as 19xx and 00-68 as 20xx, covering the date
// range the format can express (1969-01-01 through 2068-12-31).
const dateLayout = "020106"

// noDate is the all-zero sentinel meaning "no date". It never means the
// date 2000-00-00.
const noDate = "000000"

// =============================================================================
// DATES
// =============================================================================

// ToDate converts a six-digit DDMMYY field to a date. The all-zero sentinel
// maps to nil.
func ToDate(value string) (*time.Time, error) {
	if value == noDate {
		return nil, nil
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid DDMMYY date %q: %w", value, err)
	}
	return &date, nil
}

// FormatDate renders a date as a six-digit DDMMYY field. A nil date renders
// as the all-zero sentinel.
func FormatDate(date *time.Time) string {
	if date == nil {
		return noDate
	}
	return date.Format(dateLayout)
}

// =============================================================================
// BOOLEANS
// =============================================================================

// ToBool converts the closed two-symbol encoding "J"/"N" to a bool. Any
// other value is an invalid-value error; this is not a general truthy
// parse.
func ToBool(value string) (bool, error) {
	switch value {
	case "J":
		return true, nil
	case "N":
		return false, nil
	default:
		return false, fmt.Errorf("expected 'J' or 'N', got %q", value)
	}
}

// FormatBool renders a bool as "J" or "N".
func FormatBool(value bool) string {
	if value {
		return "J"
	}
	return "N"
}

// =============================================================================
// INTEGERS
// =============================================================================

// ToInt converts a zero-padded digit field to an int.
func ToInt(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric field %q: %w", value, err)
	}
	return n, nil
}

// ToInt64 converts a zero-padded digit field to an int64. Used for the
// 17-digit amount fields, which overflow int32.
func ToInt64(value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric field %q: %w", value, err)
	}
	return n, nil
}

// FormatInt renders an integer zero-padded to the given width, matching the
// width it was parsed from.
func FormatInt(value int, width int) string {
	return fmt.Sprintf("%0*d", width, value)
}

// FormatInt64 renders an int64 zero-padded to the given width.
func FormatInt64(value int64, width int) string {
	return fmt.Sprintf("%0*d", width, value)
}

// =============================================================================
// STRINGS
// =============================================================================

// ToSafeString normalizes a free-text field: newlines are stripped,
// surrounding spaces trimmed, and a resulting empty string collapses to the
// absent value ("").
func ToSafeString(value string) string {
	value = StripNewlines(value)
	return strings.TrimSpace(value)
}

// StripNewlines removes CR and LF characters from a string.
func StripNewlines(value string) string {
	value = strings.ReplaceAll(value, "\r", "")
	return strings.ReplaceAll(value, "\n", "")
}

// PadRight space-pads a string on the right to the given width. Values
// already at or over the width are returned unchanged.
func PadRight(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}

// PadLeft space-pads a string on the left to the given width. Used for the
// KID field, which is right-aligned on the wire.
func PadLeft(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return strings.Repeat(" ", width-len(value)) + value
}

// Zeros returns a string of n zero characters.
func Zeros(n int) string {
	return strings.Repeat("0", n)
}

// Spaces returns a string of n space characters.
func Spaces(n int) string {
	return strings.Repeat(" ", n)
}

// IsDigits reports whether the string is non-empty and all ASCII digits.
func IsDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// IsZeros reports whether the string is all zero characters.
func IsZeros(value string) bool {
	for i := 0; i < len(value); i++ {
		if value[i] != '0' {
			return false
		}
	}
	return true
}

// =============================================================================
// AMOUNTS
// =============================================================================

// FromCents converts an amount in integer minor units (øre) to a decimal
// NOK amount with exactly two fraction digits. The conversion is exact.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents converts a decimal NOK amount to integer minor units (øre). The
// amount must have at most two fraction digits; anything finer cannot be
// represented on the wire and is an error rather than a rounding.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than two decimals", amount)
	}
	return cents.IntPart(), nil
}
