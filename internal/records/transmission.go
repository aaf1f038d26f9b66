// =============================================================================
// OCR Giro Codec - Transmission Boundary Records
// =============================================================================
//
// TransmissionStart and TransmissionEnd bound the whole file. Both carry
// service code 00 and transmission type 00; a file contains exactly one
// pair.
//
// LAYOUTS:
//   TransmissionStart (record type 10):
//     NY 00 00 10 | data transmitter (8) | transmission number (7)
//                 | data recipient (8) | zero filler (49)
//   TransmissionEnd (record type 89):
//     NY 00 00 89 | num transactions (8) | num records (8)
//                 | total amount (17) | nets date (6) | zero filler (33)
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
// TRANSMISSION START
// =============================================================================

// TransmissionStart is the first record in every OCR file.
//
// A file can only contain a single transmission. Each transmission can
// contain any number of assignments.
type TransmissionStart struct {
	// TransmissionNumber is the data transmitter's unique enumeration of
	// the transmission. String of 7 digits.
	TransmissionNumber string

	// DataTransmitter is the data transmitter's Nets ID. String of 8 digits.
	DataTransmitter string

	// DataRecipient is the data recipient's Nets ID. String of 8 digits.
	DataRecipient string
}

func (r *TransmissionStart) ServiceCode() types.ServiceCode { return types.ServiceCodeNone }
func (r *TransmissionStart) RecordType() types.RecordType {
	return types.RecordTypeTransmissionStart
}

func parseTransmissionStart(line string) (Record, error) {
	// Single layout: NY 00 00 10, three numeric fields, zero filler.
	for {
		if !literalAt(line, 0, "NY000010") {
			break
		}
		transmitter, ok := digitsAt(line, 8, 16)
		if !ok {
			break
		}
		number, ok := digitsAt(line, 16, 23)
		if !ok {
			break
		}
		recipient, ok := digitsAt(line, 23, 31)
		if !ok {
			break
		}
		if !zerosAt(line, 31, 80) {
			break
		}

		record := &TransmissionStart{
			TransmissionNumber: number,
			DataTransmitter:    transmitter,
			DataRecipient:      recipient,
		}
		return record, record.Validate()
	}
	return nil, noMatch(line, "TransmissionStart")
}

// Validate re-checks the record's field widths.
func (r *TransmissionStart) Validate() error {
	if err := validation.StrOfLength("transmission_number", r.TransmissionNumber, 7); err != nil {
		return err
	}
	if err := validation.StrOfLength("data_transmitter", r.DataTransmitter, 8); err != nil {
		return err
	}
	return validation.StrOfLength("data_recipient", r.DataRecipient, 8)
}

// ToOCR renders the record as an exact 80-char OCR line.
func (r *TransmissionStart) ToOCR() string {
	return "NY000010" +
		r.DataTransmitter +
		r.TransmissionNumber +
		r.DataRecipient +
		converters.Zeros(49)
}

// =============================================================================
// TRANSMISSION END
// =============================================================================

// TransmissionEnd is the last record in every OCR file. It repeats the
// transmission's aggregate figures, which Nets verifies against the body.
type TransmissionEnd struct {
	// NumTransactions is the number of transactions in the transmission.
	NumTransactions int

	// NumRecords is the number of records in the transmission, boundary
	// records included.
	NumRecords int

	// TotalAmount is the sum of all transaction amounts, in øre.
	TotalAmount int64

	// NetsDate is the transmission date. Nil when the six-digit field is
	// the all-zero sentinel.
	NetsDate *time.Time
}

func (r *TransmissionEnd) ServiceCode() types.ServiceCode { return types.ServiceCodeNone }
func (r *TransmissionEnd) RecordType() types.RecordType {
	return types.RecordTypeTransmissionEnd
}

func parseTransmissionEnd(line string) (Record, error) {
	for {
		if !literalAt(line, 0, "NY000089") {
			break
		}
		numTransactions, ok := digitsAt(line, 8, 16)
		if !ok {
			break
		}
		numRecords, ok := digitsAt(line, 16, 24)
		if !ok {
			break
		}
		totalAmount, ok := digitsAt(line, 24, 41)
		if !ok {
			break
		}
		netsDate, ok := digitsAt(line, 41, 47)
		if !ok {
			break
		}
		if !zerosAt(line, 47, 80) {
			break
		}

		date, err := converters.ToDate(netsDate)
		if err != nil {
			break
		}
		transactions, _ := converters.ToInt(numTransactions)
		records, _ := converters.ToInt(numRecords)
		amount, _ := converters.ToInt64(totalAmount)

		return &TransmissionEnd{
			NumTransactions: transactions,
			NumRecords:      records,
			TotalAmount:     amount,
			NetsDate:        date,
		}, nil
	}
	return nil, noMatch(line, "TransmissionEnd")
}

// Validate re-checks the record's field constraints. All fields are
// numeric with fixed render widths, so there is nothing to reject here.
func (r *TransmissionEnd) Validate() error { return nil }

// ToOCR renders the record as an exact 80-char OCR line.
func (r *TransmissionEnd) ToOCR() string {
	return "NY000089" +
		converters.FormatInt(r.NumTransactions, 8) +
		converters.FormatInt(r.NumRecords, 8) +
		converters.FormatInt64(r.TotalAmount, 17) +
		converters.FormatDate(r.NetsDate) +
		converters.Zeros(33)
}
