// =============================================================================
// OCR Giro Codec - Field Validation Module
// =============================================================================
//
// This module holds the field validators shared by the records and objects
// packages, plus the due-date business rule for AvtaleGiro payment
// requests.
//
// VALIDATION RULES:
//   - Fixed-length fields must be exactly N chars after padding. Violating
//     this at construction time is a FieldValidationError, not a parse
//     failure (the line-level layouts catch those separately).
//   - Due dates must fall inside the window Nets will accept; files with
//     due dates outside the window are rejected by the clearing network
//     when submitted.
//
// =============================================================================

package validation

import (
	"sync"
	"time"

	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
)

// =============================================================================
// STRING LENGTH VALIDATORS
// =============================================================================

// StrOfLength validates that the value is a string of exactly the given
// length.
func StrOfLength(field, value string, length int) error {
	if len(value) != length {
		return types.NewFieldValidationError(
			field, "%s must be exactly %d chars, got %q", field, length, value,
		)
	}
	return nil
}

// OptionalStrOfLength validates that the value is either absent (empty) or
// a string of exactly the given length.
func OptionalStrOfLength(field, value string, length int) error {
	if value == "" {
		return nil
	}
	return StrOfLength(field, value, length)
}

// StrOfMaxLength validates that the value is a string of at most the given
// length.
func StrOfMaxLength(field, value string, length int) error {
	if len(value) > length {
		return types.NewFieldValidationError(
			field,
			"%s must be at most %d chars, got %q which is %d chars",
			field, length, value, len(value),
		)
	}
	return nil
}

// =============================================================================
// DUE DATE RULE
// =============================================================================

// Clock returns the current Norwegian local time. It is injectable so the
// due-date rule can be tested and so embedders can pin the submission time.
type Clock func() time.Time

// HolidayCounter counts business-day exceptions (weekends are not included;
// this is for public holidays) in the interval [start, end]. A nil counter
// is legal and means calendar-day counting only.
type HolidayCounter func(start, end time.Time) int

// cutoffHour is Nets' cut-off for sending in new transmissions. Files sent
// after 14:00 Norwegian time are processed the following day.
const cutoffHour = 14

// maxDueDateDays is the farthest into the future a due date may lie.
const maxDueDateDays = 365

var (
	osloOnce sync.Once
	osloLoc  *time.Location
)

// Oslo returns the Europe/Oslo location. Nets operates in the Norwegian
// timezone, so that is what due-date computations use. Falls back to a
// fixed CET zone if the system has no timezone database.
func Oslo() *time.Location {
	osloOnce.Do(func() {
		loc, err := time.LoadLocation("Europe/Oslo")
		if err != nil {
			loc = time.FixedZone("CET", 1*60*60)
		}
		osloLoc = loc
	})
	return osloLoc
}

// DefaultClock returns the current time in the Europe/Oslo timezone.
func DefaultClock() time.Time {
	return time.Now().In(Oslo())
}

// MinimumDueDate returns the earliest due date Nets will accept for a
// transmission created at the given time. The base offset is 4 calendar
// days, or 5 when the time is past the 14:00 cut-off, further pushed out by
// one day per holiday the counter reports in the offset window. A nil
// counter must not fail; the rule then counts calendar days only.
func MinimumDueDate(now time.Time, holidays HolidayCounter) time.Time {
	delta := 4
	if now.Hour() >= cutoffHour {
		delta = 5
	}

	if holidays != nil {
		delta += holidays(now, now.AddDate(0, 0, delta))
	}

	minimum := now.AddDate(0, 0, delta)
	return time.Date(
		minimum.Year(), minimum.Month(), minimum.Day(), 0, 0, 0, 0, time.UTC,
	)
}

// MaximumDueDate returns the latest due date Nets will accept for a
// transmission created at the given time: one year out.
func MaximumDueDate(now time.Time) time.Time {
	maximum := now.AddDate(0, 0, maxDueDateDays)
	return time.Date(
		maximum.Year(), maximum.Month(), maximum.Day(), 0, 0, 0, 0, time.UTC,
	)
}

// ValidateDueDate checks a payment request due date against the window
// derived from the given submission time.
func ValidateDueDate(due time.Time, now time.Time, holidays HolidayCounter) error {
	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)

	if day.Before(MinimumDueDate(now, holidays)) {
		return types.NewFieldValidationError(
			"due_date",
			"the minimum due date of a transaction is today + 4 calendar days;"+
				" OCR files with due dates earlier than this will be rejected"+
				" when submitted",
		)
	}
	if day.After(MaximumDueDate(now)) {
		return types.NewFieldValidationError(
			"due_date",
			"the maximum due date of a transaction is today + 365 calendar days;"+
				" OCR files with due dates later than this will be rejected"+
				" when submitted",
		)
	}
	return nil
}
