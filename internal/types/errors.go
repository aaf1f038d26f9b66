// =============================================================================
// OCR Giro Codec - Error Taxonomy
// =============================================================================
//
// All codec failures are reported through one of the typed errors below.
// Errors are returned synchronously at the point of detection; there is no
// retry logic and no partial-result recovery anywhere in the codec. Callers
// should treat any of these as "this file/tree is invalid" and surface it
// unmodified.
//
// ERROR TYPES:
//   LengthError          - a line is not exactly 80 chars, or a record set
//                          is missing its start/end boundary pair
//   FormatError          - a line's type code is non-numeric or unknown, or
//                          the line matches none of its type's layouts
//   FieldValidationError - a programmatically supplied value violates a
//                          fixed-length or max-length constraint
//   StructuralError      - grouping found records in an impossible order
//   BoundsError          - specification text exceeds its line/record limits
//   PreconditionError    - a builder method was called on an assignment of
//                          the wrong service code or type
//
// =============================================================================

package types

import "fmt"

// LengthError reports a line of the wrong length or a record set too short
// to contain its boundary pair.
type LengthError struct {
	Msg string
}

func (e *LengthError) Error() string { return e.Msg }

// NewLengthError formats and returns a new LengthError.
func NewLengthError(format string, args ...any) *LengthError {
	return &LengthError{Msg: fmt.Sprintf(format, args...)}
}

// FormatError reports a line that could not be matched to a record layout.
// It carries the offending line and the name of the record type whose
// layouts were tried, for diagnostics.
type FormatError struct {
	Msg        string
	Line       string
	RecordName string
}

func (e *FormatError) Error() string { return e.Msg }

// NewFormatError formats and returns a new FormatError.
func NewFormatError(format string, args ...any) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// FieldValidationError reports a field value that violates a length or
// value constraint at object-construction time. This is about a *value*
// supplied programmatically, as opposed to FormatError, which is about a
// *line*.
type FieldValidationError struct {
	Field string
	Msg   string
}

func (e *FieldValidationError) Error() string { return e.Msg }

// NewFieldValidationError formats and returns a new FieldValidationError
// for the named field.
func NewFieldValidationError(field, format string, args ...any) *FieldValidationError {
	return &FieldValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// StructuralError reports an impossible record ordering during grouping,
// such as a non-boundary record outside any open group, or a transaction
// bucket missing its mandatory first two records.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string { return e.Msg }

// NewStructuralError formats and returns a new StructuralError.
func NewStructuralError(format string, args ...any) *StructuralError {
	return &StructuralError{Msg: fmt.Sprintf(format, args...)}
}

// BoundsError reports specification text that exceeds the 42-line limit,
// a line longer than 80 chars, or more than 84 fragments supplied to the
// reassembly function.
type BoundsError struct {
	Msg string
}

func (e *BoundsError) Error() string { return e.Msg }

// NewBoundsError formats and returns a new BoundsError.
func NewBoundsError(format string, args ...any) *BoundsError {
	return &BoundsError{Msg: fmt.Sprintf(format, args...)}
}

// PreconditionError reports a builder method invoked on an assignment whose
// service code or type does not match the operation.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

// NewPreconditionError formats and returns a new PreconditionError.
func NewPreconditionError(format string, args ...any) *PreconditionError {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}
