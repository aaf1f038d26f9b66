// =============================================================================
// OCR Giro Codec - Transmission
// =============================================================================
//
// Transmission is the top-level object: one per OCR file, owning an
// ordered sequence of assignments.
//
// =============================================================================

package objects

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kfjeldsa/ocr-giro-codec/internal/records"
	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
	"github.com/kfjeldsa/ocr-giro-codec/internal/validation"
)

// Transmission is the whole file: a single transmission bounded by the
// transmission start/end records, containing any number of assignments.
type Transmission struct {
	// Number is the data transmitter's unique enumeration of the
	// transmission. String of 7 digits.
	Number string

	// DataTransmitter is the data transmitter's Nets ID. String of 8
	// digits.
	DataTransmitter string

	// DataRecipient is the data recipient's Nets ID. String of 8 digits.
	DataRecipient string

	// Date is the transmission date. For OCR Giro files from Nets this is
	// Nets' processing date. For AvtaleGiro payment requests the earliest
	// due date in the transmission is used instead, at render time.
	Date *time.Time

	// Assignments is the ordered list of assignments, in appearance order.
	Assignments []*Assignment
}

// NewTransmission constructs an empty transmission and validates its
// field widths.
func NewTransmission(number, dataTransmitter, dataRecipient string) (*Transmission, error) {
	transmission := &Transmission{
		Number:          number,
		DataTransmitter: dataTransmitter,
		DataRecipient:   dataRecipient,
	}
	if err := transmission.validate(); err != nil {
		return nil, err
	}
	return transmission, nil
}

func (t *Transmission) validate() error {
	if err := validation.StrOfLength("number", t.Number, 7); err != nil {
		return err
	}
	if err := validation.StrOfLength("data_transmitter", t.DataTransmitter, 8); err != nil {
		return err
	}
	return validation.StrOfLength("data_recipient", t.DataRecipient, 8)
}

// =============================================================================
// GROUPING (READ PATH)
// =============================================================================

// TransmissionFromRecords builds a Transmission from the flat record
// sequence. At least the boundary pair is required.
func TransmissionFromRecords(recs []records.Record) (*Transmission, error) {
	if len(recs) < 2 {
		return nil, types.NewLengthError(
			"at least 2 records required, got %d", len(recs),
		)
	}

	start, ok := recs[0].(*records.TransmissionStart)
	if !ok {
		return nil, types.NewStructuralError(
			"expected TransmissionStart record, got %T", recs[0],
		)
	}
	end, ok := recs[len(recs)-1].(*records.TransmissionEnd)
	if !ok {
		return nil, types.NewStructuralError(
			"expected TransmissionEnd record, got %T", recs[len(recs)-1],
		)
	}

	assignments, err := groupAssignments(recs[1 : len(recs)-1])
	if err != nil {
		return nil, err
	}

	transmission, err := NewTransmission(
		start.TransmissionNumber, start.DataTransmitter, start.DataRecipient,
	)
	if err != nil {
		return nil, err
	}
	transmission.Date = end.NetsDate
	transmission.Assignments = assignments
	return transmission, nil
}

// groupAssignments runs the boundary state machine over the transmission
// body: an AssignmentStart opens a group, an AssignmentEnd closes it, and
// any record outside an open group is a structural error.
func groupAssignments(body []records.Record) ([]*Assignment, error) {
	var groups [][]records.Record
	inside := false

	for _, record := range body {
		if _, ok := record.(*records.AssignmentStart); ok {
			groups = append(groups, nil)
			inside = true
		}
		if !inside {
			return nil, types.NewStructuralError(
				"expected AssignmentStart record, got %T", record,
			)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], record)
		if _, ok := record.(*records.AssignmentEnd); ok {
			inside = false
		}
	}

	assignments := make([]*Assignment, 0, len(groups))
	for _, group := range groups {
		assignment, err := AssignmentFromRecords(group)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

// =============================================================================
// RECONSTRUCTION (WRITE PATH)
// =============================================================================

// ToOCR renders the transmission as OCR file contents: newline-joined
// 80-char lines with no trailing newline.
func (t *Transmission) ToOCR() (string, error) {
	recs, err := t.ToRecords()
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(recs))
	for _, record := range recs {
		lines = append(lines, record.ToOCR())
	}
	return strings.Join(lines, "\n"), nil
}

// ToRecords renders the transmission back to the flat record sequence,
// recomputing every aggregate field in the boundary records.
func (t *Transmission) ToRecords() ([]records.Record, error) {
	start := &records.TransmissionStart{
		TransmissionNumber: t.Number,
		DataTransmitter:    t.DataTransmitter,
		DataRecipient:      t.DataRecipient,
	}
	if err := start.Validate(); err != nil {
		return nil, err
	}

	result := []records.Record{start}
	for _, assignment := range t.Assignments {
		assignmentRecords, err := assignment.ToRecords()
		if err != nil {
			return nil, err
		}
		result = append(result, assignmentRecords...)
	}

	end, err := t.endRecord(len(result) + 1)
	if err != nil {
		return nil, err
	}
	return append(result, end), nil
}

// endRecord builds the TransmissionEnd record. The date is normally the
// caller-supplied transmission date, except when every assignment is an
// AvtaleGiro payment-request or cancellation assignment: then the minimum
// of each assignment's earliest transaction date is used, so the
// transmission date always matches what Nets derives from the body.
func (t *Transmission) endRecord(numRecords int) (*records.TransmissionEnd, error) {
	cents, err := totalAmountInCents(t.TotalAmount())
	if err != nil {
		return nil, err
	}

	date := t.Date
	if len(t.Assignments) > 0 && t.allAvtaleGiroPaymentAssignments() {
		if earliest := t.earliestTransactionDate(); earliest != nil {
			date = earliest
		}
	}

	return &records.TransmissionEnd{
		NumTransactions: t.NumTransactions(),
		NumRecords:      numRecords,
		TotalAmount:     cents,
		NetsDate:        date,
	}, nil
}

func totalAmountInCents(total decimal.Decimal) (int64, error) {
	cents := total.Shift(2)
	if !cents.IsInteger() {
		return 0, types.NewFieldValidationError(
			"total_amount", "total amount %s has more than two decimals", total,
		)
	}
	return cents.IntPart(), nil
}

func (t *Transmission) allAvtaleGiroPaymentAssignments() bool {
	for _, assignment := range t.Assignments {
		if assignment.Service != types.ServiceCodeAvtaleGiro {
			return false
		}
		if assignment.Type != types.AssignmentTypeTransactions &&
			assignment.Type != types.AssignmentTypeAvtaleGiroCancellations {
			return false
		}
	}
	return true
}

func (t *Transmission) earliestTransactionDate() *time.Time {
	var earliest *time.Time
	for _, assignment := range t.Assignments {
		date := assignment.EarliestTransactionDate()
		if date == nil {
			continue
		}
		if earliest == nil || date.Before(*earliest) {
			earliest = date
		}
	}
	return earliest
}

// =============================================================================
// BUILDER METHODS
// =============================================================================

// AddAssignment adds an assignment to the transmission.
func (t *Transmission) AddAssignment(
	service types.ServiceCode,
	assignmentType types.AssignmentType,
	number string,
	account string,
) (*Assignment, error) {
	assignment, err := NewAssignment(service, assignmentType, number, account, "", nil)
	if err != nil {
		return nil, err
	}
	t.Assignments = append(t.Assignments, assignment)
	return assignment, nil
}

// AddOCRGiroAssignment adds an OCR Giro assignment carrying the payee's
// Nets agreement ID and assignment date.
func (t *Transmission) AddOCRGiroAssignment(
	assignmentType types.AssignmentType,
	number string,
	account string,
	agreementID string,
	date *time.Time,
) (*Assignment, error) {
	assignment, err := NewAssignment(
		types.ServiceCodeOCRGiro, assignmentType, number, account, agreementID, date,
	)
	if err != nil {
		return nil, err
	}
	t.Assignments = append(t.Assignments, assignment)
	return assignment, nil
}

// =============================================================================
// AGGREGATES
// =============================================================================

// NumTransactions is the number of transactions in the transmission.
func (t *Transmission) NumTransactions() int {
	count := 0
	for _, assignment := range t.Assignments {
		count += assignment.NumTransactions()
	}
	return count
}

// NumRecords is the number of records in the transmission, the
// transmission's own boundary pair included.
func (t *Transmission) NumRecords() (int, error) {
	count := 2
	for _, assignment := range t.Assignments {
		assignmentCount, err := assignment.NumRecords()
		if err != nil {
			return 0, err
		}
		count += assignmentCount
	}
	return count, nil
}

// TotalAmount sums the amounts of all transactions in the transmission.
func (t *Transmission) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, assignment := range t.Assignments {
		total = total.Add(assignment.TotalAmount())
	}
	return total
}
