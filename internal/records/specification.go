// =============================================================================
// OCR Giro Codec - Transaction Specification Records
// =============================================================================
//
// TransactionSpecification carries the free text the bank uses to notify
// the payer about an AvtaleGiro payment request. Each record holds half of
// an 80-char logical line of text; a transaction can carry up to 84
// records, reassembling into up to 42 logical lines.
//
// LAYOUT (record type 49):
//   NY 21 21 49 | number (7) | literal "4" (payment notification)
//               | line number (3) | column number (1) | text (40)
//               | zero filler (20)
//
// =============================================================================

package records

import (
	"sort"
	"strings"

	"github.com/kfjeldsa/ocr-giro-codec/internal/converters"
	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
	"github.com/kfjeldsa/ocr-giro-codec/internal/validation"
)

// Specification text bounds: 42 logical lines of 80 chars, stored as two
// 40-char columns per line.
const (
	maxSpecificationLines      = 42
	maxSpecificationLineLength = 80
	specificationColumns       = 2
	maxSpecificationRecords    = maxSpecificationLines * specificationColumns
	specificationColumnWidth   = 40
)

// TransactionSpecification is one half-line fragment of the bank
// notification text of an AvtaleGiro payment request.
type TransactionSpecification struct {
	// TransactionType tells what kind of transaction this belongs to.
	// Always AVTALEGIRO_WITH_BANK_NOTIFICATION in practice.
	TransactionType types.TransactionType

	// Number is the transaction number within the assignment.
	Number int

	// LineNumber is the 1-based logical text line this fragment belongs to.
	LineNumber int

	// ColumnNumber is 1 for the first 40 chars of the line, 2 for the
	// second.
	ColumnNumber int

	// Text is the fragment, exactly 40 chars, space-padded on the right.
	Text string
}

func (r *TransactionSpecification) ServiceCode() types.ServiceCode {
	return types.ServiceCodeAvtaleGiro
}
func (r *TransactionSpecification) RecordType() types.RecordType {
	return types.RecordTypeTransactionSpec
}
func (r *TransactionSpecification) TransactionNumber() int { return r.Number }

func parseTransactionSpecification(line string) (Record, error) {
	for {
		// The literal "4" after the transaction number marks payment
		// notification text.
		if !literalAt(line, 0, "NY2121") || !literalAt(line, 6, "49") ||
			!literalAt(line, 15, "4") {
			break
		}
		number, ok := digitsAt(line, 8, 15)
		if !ok {
			break
		}
		lineNumber, ok := digitsAt(line, 16, 19)
		if !ok {
			break
		}
		columnNumber, ok := digitsAt(line, 19, 20)
		if !ok {
			break
		}
		if !zerosAt(line, 60, 80) {
			break
		}

		num, _ := converters.ToInt(number)
		lineNo, _ := converters.ToInt(lineNumber)
		columnNo, _ := converters.ToInt(columnNumber)
		record := &TransactionSpecification{
			TransactionType: types.TransactionTypeAvtaleGiroWithBankNotification,
			Number:          num,
			LineNumber:      lineNo,
			ColumnNumber:    columnNo,
			Text:            converters.StripNewlines(line[20:60]),
		}
		return record, record.Validate()
	}
	return nil, noMatch(line, "TransactionSpecification")
}

// Validate re-checks the record's field constraints.
func (r *TransactionSpecification) Validate() error {
	return validation.StrOfMaxLength("text", r.Text, specificationColumnWidth)
}

// ToOCR renders the record as an exact 80-char OCR line.
func (r *TransactionSpecification) ToOCR() string {
	return "NY212149" +
		converters.FormatInt(r.Number, 7) +
		"4" +
		converters.FormatInt(r.LineNumber, 3) +
		converters.FormatInt(r.ColumnNumber, 1) +
		converters.PadRight(r.Text, specificationColumnWidth) +
		converters.Zeros(20)
}

// =============================================================================
// TEXT CODEC
// =============================================================================

// SpecificationsFromText splits a multi-line notification text into
// specification records: two 40-char space-padded fragments per logical
// line. Texts over 42 lines, or with any line over 80 chars, are rejected
// with a BoundsError before any record is produced.
func SpecificationsFromText(
	transactionType types.TransactionType,
	transactionNumber int,
	text string,
) ([]*TransactionSpecification, error) {
	lines := splitTextLines(text)

	if len(lines) > maxSpecificationLines {
		return nil, types.NewBoundsError(
			"max %d specification lines allowed, got %d",
			maxSpecificationLines, len(lines),
		)
	}
	for _, lineText := range lines {
		if len(lineText) > maxSpecificationLineLength {
			return nil, types.NewBoundsError(
				"specification lines must be max %d chars long, got %d: %q",
				maxSpecificationLineLength, len(lineText), lineText,
			)
		}
	}

	var specs []*TransactionSpecification
	for i, lineText := range lines {
		padded := converters.PadRight(lineText, maxSpecificationLineLength)
		for column := 1; column <= specificationColumns; column++ {
			specs = append(specs, &TransactionSpecification{
				TransactionType: transactionType,
				Number:          transactionNumber,
				LineNumber:      i + 1,
				ColumnNumber:    column,
				Text:            padded[(column-1)*specificationColumnWidth : column*specificationColumnWidth],
			})
		}
	}
	return specs, nil
}

// SpecificationsToText reassembles specification records into the
// notification text: fragments sorted by (line, column), concatenated,
// with a newline after every final-column fragment. More than 84 fragments
// is a BoundsError.
func SpecificationsToText(specs []*TransactionSpecification) (string, error) {
	if len(specs) > maxSpecificationRecords {
		return "", types.NewBoundsError(
			"max %d specification records allowed, got %d",
			maxSpecificationRecords, len(specs),
		)
	}

	ordered := make([]*TransactionSpecification, len(specs))
	copy(ordered, specs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].LineNumber != ordered[j].LineNumber {
			return ordered[i].LineNumber < ordered[j].LineNumber
		}
		return ordered[i].ColumnNumber < ordered[j].ColumnNumber
	})

	var text strings.Builder
	for _, spec := range ordered {
		text.WriteString(spec.Text)
		if spec.ColumnNumber == specificationColumns {
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}

// splitTextLines splits on line breaks without introducing a trailing
// empty line for text that ends with a newline. An empty text has no
// lines.
func splitTextLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
