// =============================================================================
// OCR Giro Codec - Object Model
// =============================================================================
//
// This package implements the higher-level objects API: a three-level tree
// of Transmission -> Assignment -> transaction entity, built from the flat
// record sequence the records package produces, and rendered back to it.
//
// GROUPING PROCESS:
//   1. Split the flat record sequence on assignment boundary records
//      (state machine: any record outside an open assignment other than an
//      AssignmentStart is a structural error)
//   2. Within each assignment body, bucket records by transaction number,
//      preserving first-seen order
//   3. Reduce each bucket to an entity: Agreement, PaymentRequest, or
//      Transaction, selected by the assignment's service code and type
//
// The tree never stores aggregate figures. Counts, totals, and
// earliest/latest dates are recomputed on demand when the boundary records
// are rendered, so the write path always emits exactly what a verifier
// expects back from the network.
//
// =============================================================================

package objects

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kfjeldsa/ocr-giro-codec/internal/records"
	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
	"github.com/kfjeldsa/ocr-giro-codec/internal/validation"
)

// Entity is the tagged union over the transaction-like objects an
// assignment can contain: Agreement, PaymentRequest, or Transaction.
// Variants explicitly declare whether they carry an amount and a date via
// the bool returns; aggregates skip variants that return false.
type Entity interface {
	// EntityNumber is the transaction number within the assignment.
	EntityNumber() int

	// EntityAmount is the transaction amount in NOK, when the variant
	// carries one. Agreements return false.
	EntityAmount() (decimal.Decimal, bool)

	// EntityDate is the transaction's due/processing date, when the
	// variant carries one. Agreements return false.
	EntityDate() (time.Time, bool)

	// ToRecords renders the entity's underlying 1-3 records, plus any
	// bounded specification-fragment sequence.
	ToRecords() ([]records.Record, error)
}

// Parse parses OCR file contents into a Transmission tree.
func Parse(data string) (*Transmission, error) {
	recs, err := records.ParseRecords(data)
	if err != nil {
		return nil, err
	}
	return TransmissionFromRecords(recs)
}

// ValidateDueDates checks every payment request due date in the
// transmission against the submission window derived from the given time.
// It is a caller-side hook: the builders themselves never consult a clock.
// A nil holiday counter means calendar-day counting only.
func ValidateDueDates(
	transmission *Transmission,
	now time.Time,
	holidays validation.HolidayCounter,
) error {
	for _, assignment := range transmission.Assignments {
		if assignment.Service != types.ServiceCodeAvtaleGiro {
			continue
		}
		for _, entity := range assignment.Transactions {
			request, ok := entity.(*PaymentRequest)
			if !ok {
				continue
			}
			if err := validation.ValidateDueDate(request.Date, now, holidays); err != nil {
				return err
			}
		}
	}
	return nil
}
