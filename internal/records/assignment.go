// =============================================================================
// OCR Giro Codec - Assignment Boundary Records
// =============================================================================
//
// AssignmentStart and AssignmentEnd bound one assignment inside a
// transmission. The assignment type selects which of several alternative
// fixed layouts applies; the alternatives are tried in declaration order
// and the first match wins.
//
// LAYOUTS:
//   AssignmentStart (record type 20):
//     NY 09|21 00 20 | agreement id (9) | assignment number (7)
//                    | assignment account (11) | zero filler (45)
//     NY 21 24 20    | zero filler (9) | assignment number (7)
//                    | assignment account (11) | zero filler (45)
//     NY 21 36 20    | zero filler (9) | assignment number (7)
//                    | assignment account (11) | zero filler (45)
//   AssignmentEnd (record type 88):
//     NY 09|21 00 88 | num transactions (8) | num records (8)
//                    | total amount (17) | date 1-3 (6 each) | filler (21)
//     NY 21 24 88    | num transactions (8) | num records (8) | filler (56)
//     NY 21 36 88    | num transactions (8) | num records (8)
//                    | total amount (17) | date 1-2 (6 each) | filler (27)
//
// =============================================================================

package records

import (
	"time"

	"github.com/kfjeldsa/ocr-giro-codec/internal/converters"
	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
	"github.com/kfjeldsa/ocr-giro-codec/internal/validation"
)

// =============================================================================
// ASSIGNMENT START
// =============================================================================

// AssignmentStart is the first record of an assignment. Each assignment
// can contain any number of transactions.
type AssignmentStart struct {
	// Service is the service code of the assignment's records.
	Service types.ServiceCode

	// AssignmentType selects the assignment's layout and the kind of
	// entities its body contains.
	AssignmentType types.AssignmentType

	// AssignmentNumber identifies the assignment. String of 7 digits.
	AssignmentNumber string

	// AssignmentAccount is the payee's bank account. String of 11 digits.
	AssignmentAccount string

	// AgreementID is the payee's agreement ID with Nets. String of 9
	// digits. Only present for assignment type TRANSACTIONS.
	AgreementID string
}

func (r *AssignmentStart) ServiceCode() types.ServiceCode { return r.Service }
func (r *AssignmentStart) RecordType() types.RecordType {
	return types.RecordTypeAssignmentStart
}

func parseAssignmentStart(line string) (Record, error) {
	// Layout 1: transactions / payment requests, with an agreement ID.
	if literalAt(line, 0, "NY") &&
		(literalAt(line, 2, "09") || literalAt(line, 2, "21")) &&
		literalAt(line, 4, "0020") {
		agreementID, ok1 := digitsAt(line, 8, 17)
		number, ok2 := digitsAt(line, 17, 24)
		account, ok3 := digitsAt(line, 24, 35)
		if ok1 && ok2 && ok3 && zerosAt(line, 35, 80) {
			service := types.ServiceCodeOCRGiro
			if literalAt(line, 2, "21") {
				service = types.ServiceCodeAvtaleGiro
			}
			record := &AssignmentStart{
				Service:           service,
				AssignmentType:    types.AssignmentTypeTransactions,
				AssignmentNumber:  number,
				AssignmentAccount: account,
				AgreementID:       agreementID,
			}
			return record, record.Validate()
		}
	}

	// Layouts 2 and 3: AvtaleGiro agreements and cancellations. The
	// agreement ID slot is filler.
	for _, alt := range []struct {
		code           string
		assignmentType types.AssignmentType
	}{
		{"2124", types.AssignmentTypeAvtaleGiroAgreements},
		{"2136", types.AssignmentTypeAvtaleGiroCancellations},
	} {
		if !literalAt(line, 0, "NY") || !literalAt(line, 2, alt.code) ||
			!literalAt(line, 6, "20") || !zerosAt(line, 8, 17) {
			continue
		}
		number, ok1 := digitsAt(line, 17, 24)
		account, ok2 := digitsAt(line, 24, 35)
		if ok1 && ok2 && zerosAt(line, 35, 80) {
			record := &AssignmentStart{
				Service:           types.ServiceCodeAvtaleGiro,
				AssignmentType:    alt.assignmentType,
				AssignmentNumber:  number,
				AssignmentAccount: account,
			}
			return record, record.Validate()
		}
	}

	return nil, noMatch(line, "AssignmentStart")
}

// Validate re-checks the record's field widths.
func (r *AssignmentStart) Validate() error {
	if err := validation.StrOfLength("assignment_number", r.AssignmentNumber, 7); err != nil {
		return err
	}
	if err := validation.StrOfLength("assignment_account", r.AssignmentAccount, 11); err != nil {
		return err
	}
	return validation.OptionalStrOfLength("agreement_id", r.AgreementID, 9)
}

// ToOCR renders the record as an exact 80-char OCR line.
func (r *AssignmentStart) ToOCR() string {
	agreementID := r.AgreementID
	if agreementID == "" {
		agreementID = converters.Zeros(9)
	}
	return "NY" +
		converters.FormatInt(int(r.Service), 2) +
		converters.FormatInt(int(r.AssignmentType), 2) +
		"20" +
		agreementID +
		r.AssignmentNumber +
		r.AssignmentAccount +
		converters.Zeros(45)
}

// =============================================================================
// ASSIGNMENT END
// =============================================================================

// AssignmentEnd is the last record of an assignment. It repeats the
// assignment's aggregate figures, which Nets verifies against the body.
//
// The three raw date slots mean different things depending on the service
// code; use NetsDate, NetsDateEarliest, and NetsDateLatest instead of
// reading the slots directly.
type AssignmentEnd struct {
	// Service is the service code of the assignment's records.
	Service types.ServiceCode

	// AssignmentType selects the assignment's layout.
	AssignmentType types.AssignmentType

	// NumTransactions is the number of transactions in the assignment.
	NumTransactions int

	// NumRecords is the number of records in the assignment, boundary
	// records included.
	NumRecords int

	// TotalAmount is the sum of transaction amounts in øre. Absent for
	// agreement assignments, which carry no amounts.
	TotalAmount *int64

	// NetsDate1 through NetsDate3 are the raw date slots. Their meaning
	// branches on the service code.
	NetsDate1 *time.Time
	NetsDate2 *time.Time
	NetsDate3 *time.Time
}

func (r *AssignmentEnd) ServiceCode() types.ServiceCode { return r.Service }
func (r *AssignmentEnd) RecordType() types.RecordType {
	return types.RecordTypeAssignmentEnd
}

// assignmentEndDates reads the date slots available to a layout.
func assignmentEndDates(line string, count int) ([]*time.Time, bool) {
	dates := make([]*time.Time, 3)
	for i := 0; i < count; i++ {
		raw, ok := digitsAt(line, 41+6*i, 47+6*i)
		if !ok {
			return nil, false
		}
		date, err := converters.ToDate(raw)
		if err != nil {
			return nil, false
		}
		dates[i] = date
	}
	return dates, true
}

func parseAssignmentEnd(line string) (Record, error) {
	if !literalAt(line, 0, "NY") || !literalAt(line, 6, "88") {
		return nil, noMatch(line, "AssignmentEnd")
	}

	numTransactions, ok1 := digitsAt(line, 8, 16)
	numRecords, ok2 := digitsAt(line, 16, 24)
	if !ok1 || !ok2 {
		return nil, noMatch(line, "AssignmentEnd")
	}
	transactions, _ := converters.ToInt(numTransactions)
	recordCount, _ := converters.ToInt(numRecords)

	// Layout 1: transactions / payment requests, with three date slots.
	if (literalAt(line, 2, "09") || literalAt(line, 2, "21")) &&
		literalAt(line, 4, "00") {
		rawAmount, ok := digitsAt(line, 24, 41)
		if ok {
			if dates, ok := assignmentEndDates(line, 3); ok && zerosAt(line, 59, 80) {
				service := types.ServiceCodeOCRGiro
				if literalAt(line, 2, "21") {
					service = types.ServiceCodeAvtaleGiro
				}
				amount, _ := converters.ToInt64(rawAmount)
				return &AssignmentEnd{
					Service:         service,
					AssignmentType:  types.AssignmentTypeTransactions,
					NumTransactions: transactions,
					NumRecords:      recordCount,
					TotalAmount:     &amount,
					NetsDate1:       dates[0],
					NetsDate2:       dates[1],
					NetsDate3:       dates[2],
				}, nil
			}
		}
	}

	// Layout 2: AvtaleGiro agreements. No amount and no dates.
	if literalAt(line, 2, "2124") && zerosAt(line, 24, 80) {
		return &AssignmentEnd{
			Service:         types.ServiceCodeAvtaleGiro,
			AssignmentType:  types.AssignmentTypeAvtaleGiroAgreements,
			NumTransactions: transactions,
			NumRecords:      recordCount,
		}, nil
	}

	// Layout 3: AvtaleGiro cancellations, with two date slots.
	if literalAt(line, 2, "2136") {
		rawAmount, ok := digitsAt(line, 24, 41)
		if ok {
			if dates, ok := assignmentEndDates(line, 2); ok && zerosAt(line, 53, 80) {
				amount, _ := converters.ToInt64(rawAmount)
				return &AssignmentEnd{
					Service:         types.ServiceCodeAvtaleGiro,
					AssignmentType:  types.AssignmentTypeAvtaleGiroCancellations,
					NumTransactions: transactions,
					NumRecords:      recordCount,
					TotalAmount:     &amount,
					NetsDate1:       dates[0],
					NetsDate2:       dates[1],
				}, nil
			}
		}
	}

	return nil, noMatch(line, "AssignmentEnd")
}

// NetsDate is Nets' processing date. Only used for OCR Giro.
func (r *AssignmentEnd) NetsDate() *time.Time {
	if r.Service == types.ServiceCodeOCRGiro {
		return r.NetsDate1
	}
	return nil
}

// NetsDateEarliest is the earliest date from the contained transactions.
func (r *AssignmentEnd) NetsDateEarliest() *time.Time {
	switch r.Service {
	case types.ServiceCodeOCRGiro:
		return r.NetsDate2
	case types.ServiceCodeAvtaleGiro:
		return r.NetsDate1
	default:
		return nil
	}
}

// NetsDateLatest is the latest date from the contained transactions.
func (r *AssignmentEnd) NetsDateLatest() *time.Time {
	switch r.Service {
	case types.ServiceCodeOCRGiro:
		return r.NetsDate3
	case types.ServiceCodeAvtaleGiro:
		return r.NetsDate2
	default:
		return nil
	}
}

// Validate re-checks the record's field constraints. All fields are
// numeric with fixed render widths, so there is nothing to reject here.
func (r *AssignmentEnd) Validate() error { return nil }

// ToOCR renders the record as an exact 80-char OCR line. Absent amounts
// and dates render as all-zero fields.
func (r *AssignmentEnd) ToOCR() string {
	amount := converters.Zeros(17)
	if r.TotalAmount != nil {
		amount = converters.FormatInt64(*r.TotalAmount, 17)
	}
	return "NY" +
		converters.FormatInt(int(r.Service), 2) +
		converters.FormatInt(int(r.AssignmentType), 2) +
		"88" +
		converters.FormatInt(r.NumTransactions, 8) +
		converters.FormatInt(r.NumRecords, 8) +
		amount +
		converters.FormatDate(r.NetsDate1) +
		converters.FormatDate(r.NetsDate2) +
		converters.FormatDate(r.NetsDate3) +
		converters.Zeros(21)
}
