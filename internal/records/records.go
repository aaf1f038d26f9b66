// =============================================================================
// OCR Giro Codec - Record Layer
// =============================================================================
//
// This package implements the lower-level records API: parsing a single
// fixed-width 80-char line into a typed record, and serializing a record
// back to an exact 80-char line.
//
// LINE ANATOMY:
//   offset 0, width 2 : literal format code "NY"
//   offset 2, width 2 : service code (00, 09, or 21)
//   offset 4, width 2 : transmission/assignment/transaction type
//   offset 6, width 2 : record type (the dispatch discriminator)
//   offset 8..79      : record-specific fields and filler
//
// PARSING PROCESS:
//   1. Validate the line is exactly 80 chars
//   2. Read the two-digit record type at offset 6
//   3. Look the type up in the closed dispatch table
//   4. Try the record type's layout alternatives in declaration order;
//      the first layout that matches wins
//
// The record set is fixed and finite, so the dispatch table is a static
// map rather than any kind of runtime discovery. Layouts are matched with
// fixed-offset slicing and per-field character checks instead of regexps;
// some layouts for the same record type are deliberately near-identical
// (same type, different service code), and trying them in declaration
// order preserves the intended precedence.
//
// =============================================================================

package records

import (
	"strings"

	"github.com/kfjeldsa/ocr-giro-codec/internal/converters"
	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
)

// LineLength is the exact length of every line in an OCR file.
const LineLength = 80

// recordTypeOffset is where the two-digit record type discriminator lives.
const (
	recordTypeOffset = 6
	recordTypeWidth  = 2
)

// Record is the capability set shared by all record kinds: every record
// knows its service code, its record type, how to render itself as an
// 80-char OCR line, and how to re-check its own field constraints.
type Record interface {
	// ServiceCode tells which Nets service the record applies to.
	ServiceCode() types.ServiceCode

	// RecordType is the record's two-digit discriminator.
	RecordType() types.RecordType

	// ToOCR renders the record as an exact 80-char OCR line.
	ToOCR() string

	// Validate re-checks the record's field width and value constraints.
	Validate() error
}

// =============================================================================
// DISPATCH TABLE
// =============================================================================

// recordParsers is the closed dispatch table from record type to parser.
// The file format is fixed, so this table never changes at runtime.
var recordParsers = map[types.RecordType]func(string) (Record, error){
	types.RecordTypeTransmissionStart:      parseTransmissionStart,
	types.RecordTypeTransmissionEnd:        parseTransmissionEnd,
	types.RecordTypeAssignmentStart:        parseAssignmentStart,
	types.RecordTypeAssignmentEnd:          parseAssignmentEnd,
	types.RecordTypeTransactionAmountItem1: parseTransactionAmountItem1,
	types.RecordTypeTransactionAmountItem2: parseTransactionAmountItem2,
	types.RecordTypeTransactionAmountItem3: parseTransactionAmountItem3,
	types.RecordTypeTransactionSpec:        parseTransactionSpecification,
	types.RecordTypeTransactionAgreements:  parseAvtaleGiroAgreement,
}

// ParseLine parses a single 80-char OCR line into a typed record.
func ParseLine(line string) (Record, error) {
	if len(line) != LineLength {
		return nil, types.NewLengthError(
			"all lines must be exactly %d chars long, got %d: %q",
			LineLength, len(line), line,
		)
	}

	typeField := line[recordTypeOffset : recordTypeOffset+recordTypeWidth]
	if !converters.IsDigits(typeField) {
		return nil, &types.FormatError{
			Msg:  "record type must be numeric, got " + typeField,
			Line: line,
		}
	}

	code, _ := converters.ToInt(typeField)
	parser, ok := recordParsers[types.RecordType(code)]
	if !ok {
		return nil, &types.FormatError{
			Msg:  "unknown record type: " + typeField,
			Line: line,
		}
	}

	return parser(line)
}

// ParseRecords parses OCR file contents into the flat record sequence.
// Surrounding blank lines are trimmed; every remaining line must be exactly
// 80 chars.
func ParseRecords(data string) ([]Record, error) {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	data = strings.Trim(data, " \t\n")

	if data == "" {
		return nil, nil
	}

	lines := strings.Split(data, "\n")
	records := make([]Record, 0, len(lines))

	for _, line := range lines {
		record, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// noMatch builds the FormatError returned when a line matches none of a
// record type's layout alternatives.
func noMatch(line, recordName string) error {
	return &types.FormatError{
		Msg:        "line " + quote(line) + " did not match " + recordName + " record formats",
		Line:       line,
		RecordName: recordName,
	}
}

func quote(s string) string {
	return "\"" + s + "\""
}

// =============================================================================
// FIXED-OFFSET FIELD HELPERS
// =============================================================================
//
// Layout matching is done with these helpers instead of regexps: each
// reads a [start, end) slice of the line and reports whether it belongs to
// the expected character class. A failed check means "try the next layout
// alternative", not an error.

// digitsAt extracts a slice that must be all ASCII digits.
func digitsAt(line string, start, end int) (string, bool) {
	field := line[start:end]
	return field, converters.IsDigits(field)
}

// digitsOrSpacesAt extracts a slice that may mix digits and spaces. Used
// for the right-aligned KID field.
func digitsOrSpacesAt(line string, start, end int) (string, bool) {
	field := line[start:end]
	for i := 0; i < len(field); i++ {
		if field[i] != ' ' && (field[i] < '0' || field[i] > '9') {
			return field, false
		}
	}
	return field, true
}

// literalAt checks that the line carries the exact literal at the offset.
func literalAt(line string, start int, literal string) bool {
	return line[start:start+len(literal)] == literal
}

// zerosAt checks that a filler slice is all zero characters.
func zerosAt(line string, start, end int) bool {
	return converters.IsZeros(line[start:end])
}

// spacesAt checks that a filler slice is all space characters.
func spacesAt(line string, start, end int) bool {
	for i := start; i < end; i++ {
		if line[i] != ' ' {
			return false
		}
	}
	return true
}

// signAt extracts the one-char debit/credit sign, which is either "-" or
// "0" on the wire.
func signAt(line string, start int) (string, bool) {
	field := line[start : start+1]
	return field, field == "-" || field == "0"
}
