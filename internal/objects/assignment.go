// =============================================================================
// OCR Giro Codec - Assignment
// =============================================================================
//
// An Assignment groups multiple transactions within a transmission. The
// service code and assignment type decide which Entity variant the body
// reduces to, and which builder methods are legal.
//
// =============================================================================

package objects

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kfjeldsa/ocr-giro-codec/internal/converters"
	"github.com/kfjeldsa/ocr-giro-codec/internal/records"
	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
	"github.com/kfjeldsa/ocr-giro-codec/internal/validation"
)

// Assignment is a named batch of transactions within a transmission,
// bounded by its own start/end records on the wire.
//
// The per-assignment transaction number counter is owned exclusively by
// its Assignment and mutated only by the builder methods. The codec is
// single-threaded; callers that share an Assignment across goroutines must
// serialize the builder calls themselves.
type Assignment struct {
	// Service is the service code. AvtaleGiro for payee-created files;
	// OCR Giro files come from Nets.
	Service types.ServiceCode

	// Type is the assignment type.
	Type types.AssignmentType

	// Number is the assignment number. String of 7 digits.
	Number string

	// Account is the payee's bank account. String of 11 digits.
	Account string

	// AgreementID is the payee's agreement ID with Nets. String of 9
	// digits. Used for OCR Giro.
	AgreementID string

	// Date is the date the assignment was generated by Nets. Used for
	// OCR Giro.
	Date *time.Time

	// Transactions is the ordered list of entities in the assignment.
	Transactions []Entity

	// nextTransactionNumber is the auto-assigned number for the next
	// entity added through a builder method. Starts at 1.
	nextTransactionNumber int
}

// NewAssignment constructs an empty assignment and validates its field
// widths.
func NewAssignment(
	service types.ServiceCode,
	assignmentType types.AssignmentType,
	number string,
	account string,
	agreementID string,
	date *time.Time,
) (*Assignment, error) {
	assignment := &Assignment{
		Service:               service,
		Type:                  assignmentType,
		Number:                number,
		Account:               account,
		AgreementID:           agreementID,
		Date:                  date,
		nextTransactionNumber: 1,
	}
	if err := assignment.validate(); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (a *Assignment) validate() error {
	if err := validation.StrOfLength("number", a.Number, 7); err != nil {
		return err
	}
	if err := validation.StrOfLength("account", a.Account, 11); err != nil {
		return err
	}
	return validation.OptionalStrOfLength("agreement_id", a.AgreementID, 9)
}

// =============================================================================
// GROUPING (READ PATH)
// =============================================================================

// AssignmentFromRecords builds an Assignment from one boundary-delimited
// record group.
func AssignmentFromRecords(group []records.Record) (*Assignment, error) {
	if len(group) < 2 {
		return nil, types.NewLengthError(
			"at least 2 records required, got %d", len(group),
		)
	}

	start, ok := group[0].(*records.AssignmentStart)
	if !ok {
		return nil, types.NewStructuralError(
			"expected AssignmentStart record, got %T", group[0],
		)
	}
	end, ok := group[len(group)-1].(*records.AssignmentEnd)
	if !ok {
		return nil, types.NewStructuralError(
			"expected AssignmentEnd record, got %T", group[len(group)-1],
		)
	}
	body := group[1 : len(group)-1]

	var transactions []Entity
	var err error
	switch start.Service {
	case types.ServiceCodeAvtaleGiro:
		if start.AssignmentType == types.AssignmentTypeAvtaleGiroAgreements {
			transactions, err = agreementEntities(body)
		} else {
			transactions, err = bucketEntities(body, func(bucket []records.Record) (Entity, error) {
				return paymentRequestFromRecords(bucket)
			})
		}
	case types.ServiceCodeOCRGiro:
		transactions, err = bucketEntities(body, func(bucket []records.Record) (Entity, error) {
			return transactionFromRecords(bucket)
		})
	default:
		return nil, types.NewStructuralError(
			"unknown assignment service code: %s", start.Service,
		)
	}
	if err != nil {
		return nil, err
	}

	assignment, err := NewAssignment(
		start.Service,
		start.AssignmentType,
		start.AssignmentNumber,
		start.AssignmentAccount,
		start.AgreementID,
		end.NetsDate(),
	)
	if err != nil {
		return nil, err
	}
	assignment.Transactions = transactions
	assignment.nextTransactionNumber = 1 + highestEntityNumber(transactions)
	return assignment, nil
}

func agreementEntities(body []records.Record) ([]Entity, error) {
	entities := make([]Entity, 0, len(body))
	for _, record := range body {
		agreement, err := agreementFromRecord(record)
		if err != nil {
			return nil, err
		}
		entities = append(entities, agreement)
	}
	return entities, nil
}

// bucketEntities groups the body records by transaction number, preserving
// first-seen key order, and reduces each bucket to an entity.
func bucketEntities(
	body []records.Record,
	reduce func([]records.Record) (Entity, error),
) ([]Entity, error) {
	var order []int
	buckets := make(map[int][]records.Record)

	for _, record := range body {
		transactionRecord, ok := record.(records.TransactionRecord)
		if !ok {
			return nil, types.NewStructuralError(
				"unexpected %T record in assignment body", record,
			)
		}
		number := transactionRecord.TransactionNumber()
		if _, seen := buckets[number]; !seen {
			order = append(order, number)
		}
		buckets[number] = append(buckets[number], record)
	}

	entities := make([]Entity, 0, len(order))
	for _, number := range order {
		entity, err := reduce(buckets[number])
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func highestEntityNumber(entities []Entity) int {
	highest := 0
	for _, entity := range entities {
		if entity.EntityNumber() > highest {
			highest = entity.EntityNumber()
		}
	}
	return highest
}

// =============================================================================
// RECONSTRUCTION (WRITE PATH)
// =============================================================================

// ToRecords renders the assignment back to its record sequence. The
// boundary records are rebuilt from recomputed aggregates, never from
// stored figures.
func (a *Assignment) ToRecords() ([]records.Record, error) {
	start := &records.AssignmentStart{
		Service:           a.Service,
		AssignmentType:    a.Type,
		AssignmentNumber:  a.Number,
		AssignmentAccount: a.Account,
		AgreementID:       a.AgreementID,
	}
	if err := start.Validate(); err != nil {
		return nil, err
	}

	result := []records.Record{start}
	for _, entity := range a.Transactions {
		entityRecords, err := entity.ToRecords()
		if err != nil {
			return nil, err
		}
		result = append(result, entityRecords...)
	}

	end, err := a.endRecord(len(result) + 1)
	if err != nil {
		return nil, err
	}
	return append(result, end), nil
}

// endRecord builds the AssignmentEnd record. The date slot assignment
// branches on service code: OCR Giro carries the assignment date plus the
// earliest/latest transaction dates, AvtaleGiro only the latter two.
func (a *Assignment) endRecord(numRecords int) (*records.AssignmentEnd, error) {
	cents, err := converters.ToCents(a.TotalAmount())
	if err != nil {
		return nil, err
	}

	end := &records.AssignmentEnd{
		Service:         a.Service,
		AssignmentType:  a.Type,
		NumTransactions: a.NumTransactions(),
		NumRecords:      numRecords,
		TotalAmount:     &cents,
	}

	switch a.Service {
	case types.ServiceCodeOCRGiro:
		end.NetsDate1 = a.Date
		end.NetsDate2 = a.EarliestTransactionDate()
		end.NetsDate3 = a.LatestTransactionDate()
	case types.ServiceCodeAvtaleGiro:
		end.NetsDate1 = a.EarliestTransactionDate()
		end.NetsDate2 = a.LatestTransactionDate()
	default:
		return nil, types.NewStructuralError(
			"unhandled assignment service code: %s", a.Service,
		)
	}
	return end, nil
}

// =============================================================================
// BUILDER METHODS
// =============================================================================

// PaymentOptions are the caller-supplied fields of an AvtaleGiro payment
// request or cancellation.
type PaymentOptions struct {
	// KID identifies the customer and invoice. Max 25 chars.
	KID string

	// DueDate is the requested payment date.
	DueDate time.Time

	// Amount is the payment amount in NOK with at most two decimals.
	Amount decimal.Decimal

	// Reference is an optional statement line shown to the payer. Max 25
	// chars.
	Reference string

	// PayerName is an optional payer name for cross-referencing reports.
	PayerName string

	// BankNotification selects bank notification: the bank notifies the
	// payer with NotificationText instead of the payee notifying them.
	BankNotification bool

	// NotificationText is the bank notification text, up to 42 lines of 80
	// chars. Only used when BankNotification is set.
	NotificationText string
}

// AddPaymentRequest adds an AvtaleGiro payment request to the assignment
// and auto-assigns the next transaction number.
//
// The assignment must have the AvtaleGiro service code and the
// TRANSACTIONS type; anything else is a PreconditionError.
func (a *Assignment) AddPaymentRequest(options PaymentOptions) (*PaymentRequest, error) {
	if a.Service != types.ServiceCodeAvtaleGiro {
		return nil, types.NewPreconditionError(
			"can only add payment requests to AvtaleGiro assignments, got %s",
			a.Service,
		)
	}
	if a.Type != types.AssignmentTypeTransactions {
		return nil, types.NewPreconditionError(
			"can only add payment requests to transaction assignments, got %s",
			a.Type,
		)
	}

	transactionType := types.TransactionTypeAvtaleGiroWithPayeeNotification
	if options.BankNotification {
		transactionType = types.TransactionTypeAvtaleGiroWithBankNotification
	}
	return a.addAvtaleGiroTransaction(transactionType, options)
}

// AddPaymentCancellation adds an AvtaleGiro cancellation to the
// assignment and auto-assigns the next transaction number.
//
// The assignment must have the AvtaleGiro service code and the
// AVTALEGIRO_CANCELLATIONS type; anything else is a PreconditionError.
// Apart from that, the cancellation must be identical to the payment
// request it cancels.
func (a *Assignment) AddPaymentCancellation(options PaymentOptions) (*PaymentRequest, error) {
	if a.Service != types.ServiceCodeAvtaleGiro {
		return nil, types.NewPreconditionError(
			"can only add cancellations to AvtaleGiro assignments, got %s",
			a.Service,
		)
	}
	if a.Type != types.AssignmentTypeAvtaleGiroCancellations {
		return nil, types.NewPreconditionError(
			"can only add cancellations to cancellation assignments, got %s",
			a.Type,
		)
	}
	return a.addAvtaleGiroTransaction(
		types.TransactionTypeAvtaleGiroCancellation, options,
	)
}

func (a *Assignment) addAvtaleGiroTransaction(
	transactionType types.TransactionType,
	options PaymentOptions,
) (*PaymentRequest, error) {
	if err := validation.StrOfMaxLength("kid", options.KID, 25); err != nil {
		return nil, err
	}
	if err := validation.StrOfMaxLength("reference", options.Reference, 25); err != nil {
		return nil, err
	}
	if _, err := converters.ToCents(options.Amount); err != nil {
		return nil, types.NewFieldValidationError("amount", "%s", err)
	}

	var text string
	if options.BankNotification {
		text = options.NotificationText
	}

	number := a.nextTransactionNumber
	a.nextTransactionNumber++

	request := &PaymentRequest{
		Type:      transactionType,
		Number:    number,
		Date:      options.DueDate,
		Amount:    options.Amount,
		KID:       options.KID,
		Reference: options.Reference,
		Text:      text,
		PayerName: options.PayerName,
	}
	a.Transactions = append(a.Transactions, request)
	return request, nil
}

// =============================================================================
// AGGREGATES
// =============================================================================

// NumTransactions is the number of transactions in the assignment.
func (a *Assignment) NumTransactions() int {
	return len(a.Transactions)
}

// NumRecords is the number of records in the assignment, the boundary
// pair included.
func (a *Assignment) NumRecords() (int, error) {
	count := 2
	for _, entity := range a.Transactions {
		entityRecords, err := entity.ToRecords()
		if err != nil {
			return 0, err
		}
		count += len(entityRecords)
	}
	return count, nil
}

// TotalAmount sums the amounts of the assignment's transactions. Entities
// without an amount contribute zero.
func (a *Assignment) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, entity := range a.Transactions {
		if amount, ok := entity.EntityAmount(); ok {
			total = total.Add(amount)
		}
	}
	return total
}

// EarliestTransactionDate is the earliest date among the assignment's
// transactions, or nil when no transaction carries a date.
func (a *Assignment) EarliestTransactionDate() *time.Time {
	var earliest *time.Time
	for _, entity := range a.Transactions {
		date, ok := entity.EntityDate()
		if !ok {
			continue
		}
		if earliest == nil || date.Before(*earliest) {
			value := date
			earliest = &value
		}
	}
	return earliest
}

// LatestTransactionDate is the latest date among the assignment's
// transactions, or nil when no transaction carries a date.
func (a *Assignment) LatestTransactionDate() *time.Time {
	var latest *time.Time
	for _, entity := range a.Transactions {
		date, ok := entity.EntityDate()
		if !ok {
			continue
		}
		if latest == nil || date.After(*latest) {
			value := date
			latest = &value
		}
	}
	return latest
}
