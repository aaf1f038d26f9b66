package objects

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfjeldsa/ocr-giro-codec/internal/records"
	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
)

// Known-good lines from real OCR Giro and AvtaleGiro files.
const (
	transmissionStartLine = "NY000010555555551000081000080800000000000000000000000000000000000000000000000000"

	ocrAssignmentStartLine = "NY090020001008566000000299991042764000000000000000000000000000000000000000000000"
	ocrAmountItem1Line     = "NY09103000000012001921320101464000000000000102000                  0000531000000"
	ocrAmountItem2Line     = "NY091031000000196368271940990385620000000160192999905123410000000000000000000000"
	ocrAssignmentEndLine   = "NY090088000000010000000400000000000102000200192200192200192000000000000000000000"
	ocrTransmissionEndLine = "NY000089000000010000000600000000000102000200192000000000000000000000000000000000"

	agreementAssignmentStartLine = "NY212420000000000400008688888888888000000000000000000000000000000000000000000000"
	agreementLine                = "NY21947000000010          008000011688373J00000000000000000000000000000000000000"
	agreementAssignmentEndLine   = "NY212488000000010000000300000000000000000000000000000000000000000000000000000000"
	agreementTransmissionEndLine = "NY000089000000010000000500000000000000000000000000000000000000000000000000000000"
)

func ocrGiroFile() string {
	return strings.Join([]string{
		transmissionStartLine,
		ocrAssignmentStartLine,
		ocrAmountItem1Line,
		ocrAmountItem2Line,
		ocrAssignmentEndLine,
		ocrTransmissionEndLine,
	}, "\n")
}

func agreementsFile() string {
	return strings.Join([]string{
		transmissionStartLine,
		agreementAssignmentStartLine,
		agreementLine,
		agreementAssignmentEndLine,
		agreementTransmissionEndLine,
	}, "\n")
}

// buildPaymentRequestTransmission builds the two-request AvtaleGiro
// transmission used by several tests: one payee-notified request and one
// bank-notified request with a notification text.
func buildPaymentRequestTransmission(t *testing.T) *Transmission {
	t.Helper()

	transmission, err := NewTransmission("1703231", "01234567", types.NetsID)
	require.NoError(t, err)

	assignment, err := transmission.AddAssignment(
		types.ServiceCodeAvtaleGiro,
		types.AssignmentTypeTransactions,
		"0323001",
		"15035382752",
	)
	require.NoError(t, err)

	_, err = assignment.AddPaymentRequest(PaymentOptions{
		KID:       "000133700501645",
		DueDate:   time.Date(2017, time.April, 6, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString("5244.63"),
		Reference: "ACME invoice #50164",
		PayerName: "Wonderland",
	})
	require.NoError(t, err)

	_, err = assignment.AddPaymentRequest(PaymentOptions{
		KID:              "001054300504897",
		DueDate:          time.Date(2017, time.April, 8, 0, 0, 0, 0, time.UTC),
		Amount:           decimal.RequireFromString("475.55"),
		PayerName:        "Charlie",
		BankNotification: true,
		NotificationText: "Foo bar",
	})
	require.NoError(t, err)

	return transmission
}

// =============================================================================
// PARSING
// =============================================================================

func TestParseOCRGiroFile(t *testing.T) {
	transmission, err := Parse(ocrGiroFile())

	require.NoError(t, err)
	assert.Equal(t, "1000081", transmission.Number)
	assert.Equal(t, "55555555", transmission.DataTransmitter)
	assert.Equal(t, types.NetsID, transmission.DataRecipient)
	require.NotNil(t, transmission.Date)
	assert.Equal(t, time.Date(1992, time.January, 20, 0, 0, 0, 0, time.UTC), *transmission.Date)

	require.Len(t, transmission.Assignments, 1)
	assignment := transmission.Assignments[0]
	assert.Equal(t, types.ServiceCodeOCRGiro, assignment.Service)
	assert.Equal(t, "001008566", assignment.AgreementID)
	assert.Equal(t, "0000002", assignment.Number)
	assert.Equal(t, "99991042764", assignment.Account)

	require.Len(t, assignment.Transactions, 1)
	transaction, ok := assignment.Transactions[0].(*Transaction)
	require.True(t, ok)
	assert.Equal(t, types.TransactionTypeFromGiroDebitedAccount, transaction.Type)
	assert.Equal(t, 1, transaction.Number)
	assert.Equal(t, "0000531", transaction.KID)
	assert.Equal(t, "099038562", transaction.Reference)
	assert.Equal(t, "9636827194", transaction.FormNumber)
	assert.Equal(t, "99990512341", transaction.DebitAccount)
	assert.True(t, transaction.Amount.Equal(decimal.RequireFromString("1020.00")))

	cents, err := transaction.AmountInCents()
	require.NoError(t, err)
	assert.Equal(t, int64(102000), cents)
}

func TestParseAvtaleGiroAgreementsFile(t *testing.T) {
	transmission, err := Parse(agreementsFile())

	require.NoError(t, err)
	require.Len(t, transmission.Assignments, 1)
	assignment := transmission.Assignments[0]
	assert.Equal(t, types.AssignmentTypeAvtaleGiroAgreements, assignment.Type)

	require.Len(t, assignment.Transactions, 1)
	agreement, ok := assignment.Transactions[0].(*Agreement)
	require.True(t, ok)
	assert.Equal(t, types.RegistrationTypeActiveAgreement, agreement.RegistrationType)
	assert.Equal(t, "008000011688373", agreement.KID)
	assert.True(t, agreement.Notify)

	// Agreements carry no amount, so the transmission total is zero.
	assert.True(t, transmission.TotalAmount().IsZero())
}

func TestParseRejectsTransmissionWithoutBoundaryPair(t *testing.T) {
	_, err := Parse(transmissionStartLine)

	var lengthErr *types.LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Contains(t, err.Error(), "at least 2 records required, got 1")
}

func TestParseRejectsRecordOutsideAssignment(t *testing.T) {
	data := strings.Join([]string{
		transmissionStartLine,
		ocrAmountItem1Line,
		ocrTransmissionEndLine,
	}, "\n")

	_, err := Parse(data)

	var structuralErr *types.StructuralError
	require.ErrorAs(t, err, &structuralErr)
	assert.Contains(t, err.Error(), "expected AssignmentStart record")
}

func TestParseRejectsTransactionMissingItem2(t *testing.T) {
	data := strings.Join([]string{
		transmissionStartLine,
		ocrAssignmentStartLine,
		ocrAmountItem1Line,
		ocrAssignmentEndLine,
		ocrTransmissionEndLine,
	}, "\n")

	_, err := Parse(data)

	var structuralErr *types.StructuralError
	require.ErrorAs(t, err, &structuralErr)
	assert.Contains(t, err.Error(), "at least 2 records")
}

// =============================================================================
// RECONSTRUCTION
// =============================================================================

func TestOCRGiroFileRoundTripsByteForByte(t *testing.T) {
	transmission, err := Parse(ocrGiroFile())
	require.NoError(t, err)

	rendered, err := transmission.ToOCR()

	require.NoError(t, err)
	assert.Equal(t, ocrGiroFile(), rendered)
}

func TestAgreementsFileRoundTripsByteForByte(t *testing.T) {
	transmission, err := Parse(agreementsFile())
	require.NoError(t, err)

	rendered, err := transmission.ToOCR()

	require.NoError(t, err)
	assert.Equal(t, agreementsFile(), rendered)
}

func TestRenderParseRenderIsIdempotent(t *testing.T) {
	transmission := buildPaymentRequestTransmission(t)

	first, err := transmission.ToOCR()
	require.NoError(t, err)

	reparsed, err := Parse(first)
	require.NoError(t, err)

	second, err := reparsed.ToOCR()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmptyTransmissionRendersBoundaryPairOnly(t *testing.T) {
	transmission, err := NewTransmission("1000081", "12345678", types.NetsID)
	require.NoError(t, err)
	date := time.Date(2017, time.April, 19, 0, 0, 0, 0, time.UTC)
	transmission.Date = &date

	rendered, err := transmission.ToOCR()
	require.NoError(t, err)

	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "NY000010", lines[0][:8])
	assert.Equal(t, "NY000089", lines[1][:8])
	// Zero transactions, two records, zero amount, the supplied date.
	assert.Contains(t, lines[1], "0000000000000002")
	assert.Contains(t, lines[1], "190417")

	numRecords, err := transmission.NumRecords()
	require.NoError(t, err)
	assert.Equal(t, 2, numRecords)
}

// =============================================================================
// BUILDING PAYMENT REQUESTS
// =============================================================================

func TestBuildPaymentRequestTransmission(t *testing.T) {
	transmission := buildPaymentRequestTransmission(t)

	recs, err := transmission.ToRecords()
	require.NoError(t, err)

	// Boundary pairs, two amount item pairs, and two notification
	// fragments for the bank-notified request.
	require.Len(t, recs, 10)
	assert.IsType(t, &records.TransmissionStart{}, recs[0])
	assert.IsType(t, &records.AssignmentStart{}, recs[1])
	assert.IsType(t, &records.TransactionAmountItem1{}, recs[2])
	assert.IsType(t, &records.TransactionAmountItem2{}, recs[3])
	assert.IsType(t, &records.TransactionAmountItem1{}, recs[4])
	assert.IsType(t, &records.TransactionAmountItem2{}, recs[5])
	assert.IsType(t, &records.TransactionSpecification{}, recs[6])
	assert.IsType(t, &records.TransactionSpecification{}, recs[7])
	assert.IsType(t, &records.AssignmentEnd{}, recs[8])
	assert.IsType(t, &records.TransmissionEnd{}, recs[9])

	// The amount renders into the full-width 17-digit field.
	assert.Contains(t, recs[2].ToOCR(), "00000000000524463")

	// The notification text splits into two space-padded fragments.
	spec1 := recs[6].(*records.TransactionSpecification)
	spec2 := recs[7].(*records.TransactionSpecification)
	assert.Equal(t, "Foo bar"+strings.Repeat(" ", 33), spec1.Text)
	assert.Equal(t, strings.Repeat(" ", 40), spec2.Text)

	assert.Equal(t, 2, transmission.NumTransactions())
	assert.True(t, transmission.TotalAmount().Equal(decimal.RequireFromString("5720.18")))
}

func TestTransactionNumbersAutoIncrement(t *testing.T) {
	transmission := buildPaymentRequestTransmission(t)
	assignment := transmission.Assignments[0]

	assert.Equal(t, 1, assignment.Transactions[0].EntityNumber())
	assert.Equal(t, 2, assignment.Transactions[1].EntityNumber())

	request, err := assignment.AddPaymentRequest(PaymentOptions{
		KID:     "000133700501645",
		DueDate: time.Date(2017, time.April, 10, 0, 0, 0, 0, time.UTC),
		Amount:  decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, request.Number)
}

func TestTransactionNumberingContinuesAfterParse(t *testing.T) {
	transmission := buildPaymentRequestTransmission(t)
	rendered, err := transmission.ToOCR()
	require.NoError(t, err)

	reparsed, err := Parse(rendered)
	require.NoError(t, err)

	request, err := reparsed.Assignments[0].AddPaymentRequest(PaymentOptions{
		KID:     "000133700501645",
		DueDate: time.Date(2017, time.April, 10, 0, 0, 0, 0, time.UTC),
		Amount:  decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, request.Number)
}

func TestTransmissionEndDateUsesEarliestDueDate(t *testing.T) {
	// For a transmission of AvtaleGiro payment requests the transmission
	// date on the wire is the earliest due date, not the stored date.
	transmission := buildPaymentRequestTransmission(t)
	stored := time.Date(2017, time.March, 23, 0, 0, 0, 0, time.UTC)
	transmission.Date = &stored

	rendered, err := transmission.ToOCR()
	require.NoError(t, err)

	reparsed, err := Parse(rendered)
	require.NoError(t, err)
	require.NotNil(t, reparsed.Date)
	assert.Equal(t, time.Date(2017, time.April, 6, 0, 0, 0, 0, time.UTC), *reparsed.Date)
}

func TestAssignmentEndCarriesDueDateRange(t *testing.T) {
	transmission := buildPaymentRequestTransmission(t)

	recs, err := transmission.ToRecords()
	require.NoError(t, err)

	end := recs[8].(*records.AssignmentEnd)
	require.NotNil(t, end.NetsDateEarliest())
	require.NotNil(t, end.NetsDateLatest())
	assert.Equal(t, time.Date(2017, time.April, 6, 0, 0, 0, 0, time.UTC), *end.NetsDateEarliest())
	assert.Equal(t, time.Date(2017, time.April, 8, 0, 0, 0, 0, time.UTC), *end.NetsDateLatest())

	require.NotNil(t, end.TotalAmount)
	assert.Equal(t, int64(572018), *end.TotalAmount)
}

func TestAddPaymentCancellation(t *testing.T) {
	transmission, err := NewTransmission("1703231", "01234567", types.NetsID)
	require.NoError(t, err)

	assignment, err := transmission.AddAssignment(
		types.ServiceCodeAvtaleGiro,
		types.AssignmentTypeAvtaleGiroCancellations,
		"0323001",
		"15035382752",
	)
	require.NoError(t, err)

	cancellation, err := assignment.AddPaymentCancellation(PaymentOptions{
		KID:     "000133700501645",
		DueDate: time.Date(2017, time.April, 6, 0, 0, 0, 0, time.UTC),
		Amount:  decimal.RequireFromString("5244.63"),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TransactionTypeAvtaleGiroCancellation, cancellation.Type)

	recs, err := transmission.ToRecords()
	require.NoError(t, err)
	require.Len(t, recs, 6)
	assert.Equal(t, "NY2193", recs[2].ToOCR()[:6])
}

// =============================================================================
// BUILDER PRECONDITIONS
// =============================================================================

func TestAddPaymentRequestRejectsWrongService(t *testing.T) {
	transmission, err := NewTransmission("1703231", "01234567", types.NetsID)
	require.NoError(t, err)
	date := time.Date(2017, time.April, 19, 0, 0, 0, 0, time.UTC)

	assignment, err := transmission.AddOCRGiroAssignment(
		types.AssignmentTypeTransactions,
		"0000002", "99991042764", "001008566", &date,
	)
	require.NoError(t, err)

	_, err = assignment.AddPaymentRequest(PaymentOptions{
		KID:     "000133700501645",
		DueDate: date,
		Amount:  decimal.RequireFromString("1.00"),
	})

	var preconditionErr *types.PreconditionError
	require.ErrorAs(t, err, &preconditionErr)
	assert.Contains(t, err.Error(), "AvtaleGiro assignments")
}

func TestAddPaymentCancellationRejectsTransactionAssignment(t *testing.T) {
	transmission := buildPaymentRequestTransmission(t)
	assignment := transmission.Assignments[0]

	_, err := assignment.AddPaymentCancellation(PaymentOptions{
		KID:     "000133700501645",
		DueDate: time.Date(2017, time.April, 6, 0, 0, 0, 0, time.UTC),
		Amount:  decimal.RequireFromString("5244.63"),
	})

	var preconditionErr *types.PreconditionError
	require.ErrorAs(t, err, &preconditionErr)
	assert.Contains(t, err.Error(), "cancellation assignments")
}

func TestAddPaymentRequestRejectsOverlongKID(t *testing.T) {
	transmission := buildPaymentRequestTransmission(t)

	_, err := transmission.Assignments[0].AddPaymentRequest(PaymentOptions{
		KID:     strings.Repeat("1", 26),
		DueDate: time.Date(2017, time.April, 6, 0, 0, 0, 0, time.UTC),
		Amount:  decimal.RequireFromString("1.00"),
	})

	var fieldErr *types.FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "kid", fieldErr.Field)
}

func TestAddPaymentRequestRejectsSubCentAmount(t *testing.T) {
	transmission := buildPaymentRequestTransmission(t)

	_, err := transmission.Assignments[0].AddPaymentRequest(PaymentOptions{
		KID:     "000133700501645",
		DueDate: time.Date(2017, time.April, 6, 0, 0, 0, 0, time.UTC),
		Amount:  decimal.RequireFromString("1.005"),
	})

	var fieldErr *types.FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "amount", fieldErr.Field)
}

func TestNewTransmissionRejectsWrongFieldWidths(t *testing.T) {
	_, err := NewTransmission("170323", "01234567", types.NetsID)
	assert.Error(t, err)

	_, err = NewTransmission("1703231", "0123456", types.NetsID)
	assert.Error(t, err)

	_, err = NewTransmission("1703231", "01234567", "8080")
	assert.Error(t, err)
}

// =============================================================================
// DUE DATE HOOK
// =============================================================================

func TestValidateDueDatesAgainstSubmissionTime(t *testing.T) {
	transmission := buildPaymentRequestTransmission(t)

	// Both due dates (April 6 and 8, 2017) sit inside the window for a
	// submission on April 1 and outside it for one on April 5.
	okNow := time.Date(2017, time.April, 1, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateDueDates(transmission, okNow, nil))

	lateNow := time.Date(2017, time.April, 5, 10, 0, 0, 0, time.UTC)
	err := ValidateDueDates(transmission, lateNow, nil)
	var fieldErr *types.FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "due_date", fieldErr.Field)
}

func TestValidateDueDatesIgnoresOCRGiroTransactions(t *testing.T) {
	transmission, err := Parse(ocrGiroFile())
	require.NoError(t, err)

	// Historic processing dates are fine: the window only applies to
	// AvtaleGiro payment requests.
	now := time.Date(2017, time.April, 1, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateDueDates(transmission, now, nil))
}
