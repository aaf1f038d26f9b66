// =============================================================================
// OCR Giro Codec - Transaction Entities
// =============================================================================
//
// The three Entity variants:
//   Agreement      - an AvtaleGiro agreement update (one record, no amount)
//   PaymentRequest - an AvtaleGiro payment request or cancellation
//                    (two records plus optional notification fragments)
//   Transaction    - an OCR Giro transaction (two or three records)
//
// Entities are immutable value objects: they are constructed either from a
// parsed record bucket or by the Assignment builder methods, and carry no
// identity beyond their field values.
//
// =============================================================================

package objects

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kfjeldsa/ocr-giro-codec/internal/converters"
	"github.com/kfjeldsa/ocr-giro-codec/internal/records"
	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
)

// =============================================================================
// AGREEMENT
// =============================================================================

// Agreement contains an AvtaleGiro agreement update. Agreements are only
// found in assignments of the AVTALEGIRO_AGREEMENTS type, which are only
// created by Nets.
type Agreement struct {
	// Number is the transaction number. Unique and ordered within an
	// assignment.
	Number int

	// RegistrationType tells what kind of agreement update this is.
	RegistrationType types.AvtaleGiroRegistrationType

	// KID identifies the customer and invoice.
	KID string

	// Notify is whether the payer wants notification about payment
	// requests.
	Notify bool
}

func (a *Agreement) EntityNumber() int { return a.Number }

// EntityAmount reports no amount: agreements contribute zero to totals.
func (a *Agreement) EntityAmount() (decimal.Decimal, bool) {
	return decimal.Decimal{}, false
}

// EntityDate reports no date: agreements are excluded from earliest/latest
// date aggregates.
func (a *Agreement) EntityDate() (time.Time, bool) {
	return time.Time{}, false
}

func agreementFromRecord(record records.Record) (*Agreement, error) {
	agreement, ok := record.(*records.AvtaleGiroAgreement)
	if !ok {
		return nil, types.NewStructuralError(
			"expected AvtaleGiroAgreement record, got %T", record,
		)
	}
	return &Agreement{
		Number:           agreement.Number,
		RegistrationType: agreement.RegistrationType,
		KID:              agreement.KID,
		Notify:           agreement.Notify,
	}, nil
}

// ToRecords renders the agreement's single underlying record.
func (a *Agreement) ToRecords() ([]records.Record, error) {
	record := &records.AvtaleGiroAgreement{
		Number:           a.Number,
		RegistrationType: a.RegistrationType,
		KID:              a.KID,
		Notify:           a.Notify,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return []records.Record{record}, nil
}

// =============================================================================
// PAYMENT REQUEST
// =============================================================================

// PaymentRequest contains an AvtaleGiro payment request or cancellation.
// Use the Assignment builder methods AddPaymentRequest and
// AddPaymentCancellation to create them.
type PaymentRequest struct {
	// Type is the transaction type: payee notification, bank notification,
	// or cancellation.
	Type types.TransactionType

	// Number is the transaction number. Unique and ordered within an
	// assignment.
	Number int

	// Date is the due date.
	Date time.Time

	// Amount is the transaction amount in NOK with two decimals.
	Amount decimal.Decimal

	// KID identifies the customer and invoice.
	KID string

	// Reference is a specification line that will, if set, be displayed on
	// the payer's account statement. Max 25 chars.
	Reference string

	// Text is up to 42 lines of 80 chars of free text used by the bank to
	// notify the payer. Not used when the payee notifies the payer.
	Text string

	// PayerName helps the payee cross-reference reports from Nets with
	// their own records. Not visible to the payer.
	PayerName string
}

func (p *PaymentRequest) EntityNumber() int { return p.Number }

func (p *PaymentRequest) EntityAmount() (decimal.Decimal, bool) {
	return p.Amount, true
}

func (p *PaymentRequest) EntityDate() (time.Time, bool) {
	return p.Date, true
}

// AmountInCents is the transaction amount in øre.
func (p *PaymentRequest) AmountInCents() (int64, error) {
	return converters.ToCents(p.Amount)
}

// popAmountItems takes the mandatory first two records of a transaction
// bucket. A missing or wrong-kind record is a structural error, not a
// recoverable case.
func popAmountItems(
	bucket []records.Record,
) (*records.TransactionAmountItem1, *records.TransactionAmountItem2, []records.Record, error) {
	if len(bucket) < 2 {
		return nil, nil, nil, types.NewStructuralError(
			"a transaction must have at least 2 records, got %d", len(bucket),
		)
	}
	item1, ok := bucket[0].(*records.TransactionAmountItem1)
	if !ok {
		return nil, nil, nil, types.NewStructuralError(
			"expected TransactionAmountItem1 record, got %T", bucket[0],
		)
	}
	item2, ok := bucket[1].(*records.TransactionAmountItem2)
	if !ok {
		return nil, nil, nil, types.NewStructuralError(
			"expected TransactionAmountItem2 record, got %T", bucket[1],
		)
	}
	return item1, item2, bucket[2:], nil
}

func paymentRequestFromRecords(bucket []records.Record) (*PaymentRequest, error) {
	item1, item2, rest, err := popAmountItems(bucket)
	if err != nil {
		return nil, err
	}
	if item1.NetsDate == nil {
		return nil, types.NewStructuralError(
			"payment request %d has no due date", item1.Number,
		)
	}

	specs := make([]*records.TransactionSpecification, 0, len(rest))
	for _, record := range rest {
		spec, ok := record.(*records.TransactionSpecification)
		if !ok {
			return nil, types.NewStructuralError(
				"expected TransactionSpecification record, got %T", record,
			)
		}
		specs = append(specs, spec)
	}
	text, err := records.SpecificationsToText(specs)
	if err != nil {
		return nil, err
	}

	return &PaymentRequest{
		Type:      item1.TransactionType,
		Number:    item1.Number,
		Date:      *item1.NetsDate,
		Amount:    converters.FromCents(item1.Amount),
		KID:       item1.KID,
		Reference: item2.Reference,
		Text:      text,
		PayerName: item2.PayerName,
	}, nil
}

// ToRecords renders the payment request's two amount items, plus the
// notification text fragments when the bank notifies the payer.
func (p *PaymentRequest) ToRecords() ([]records.Record, error) {
	cents, err := p.AmountInCents()
	if err != nil {
		return nil, err
	}
	date := p.Date

	item1 := &records.TransactionAmountItem1{
		Service:         types.ServiceCodeAvtaleGiro,
		TransactionType: p.Type,
		Number:          p.Number,
		NetsDate:        &date,
		Amount:          cents,
		KID:             p.KID,
	}
	item2 := &records.TransactionAmountItem2{
		Service:         types.ServiceCodeAvtaleGiro,
		TransactionType: p.Type,
		Number:          p.Number,
		Reference:       p.Reference,
		PayerName:       p.PayerName,
	}
	for _, record := range []records.Record{item1, item2} {
		if err := record.Validate(); err != nil {
			return nil, err
		}
	}
	result := []records.Record{item1, item2}

	if p.Type == types.TransactionTypeAvtaleGiroWithBankNotification {
		specs, err := records.SpecificationsFromText(p.Type, p.Number, p.Text)
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			result = append(result, spec)
		}
	}
	return result, nil
}

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction contains an OCR Giro transaction. Transactions are found in
// assignments with the OCR_GIRO service code, which are only created by
// Nets.
type Transaction struct {
	// Type is the transaction type.
	Type types.TransactionType

	// Number is the transaction number. Unique and ordered within an
	// assignment.
	Number int

	// Date is Nets' processing date.
	Date time.Time

	// Amount is the transaction amount in NOK with two decimals.
	Amount decimal.Decimal

	// KID identifies the customer and invoice.
	KID string

	// Reference depends on the payment method.
	Reference string

	// Text is up to 40 chars of free text from the payment terminal.
	Text string

	// CentreID is the processing centre. String of 2 digits.
	CentreID string

	// DayCode is the processing day code.
	DayCode int

	// PartialSettlementNumber is the partial settlement run number.
	PartialSettlementNumber int

	// PartialSettlementSerialNumber is the serial within the partial
	// settlement. String of 5 digits.
	PartialSettlementSerialNumber string

	// Sign is the debit/credit sign, "-" or "0".
	Sign string

	// FormNumber is the giro form number. String of 10 digits.
	FormNumber string

	// BankDate is the date the bank registered the payment.
	BankDate *time.Time

	// DebitAccount is the payer's account. String of 11 digits.
	DebitAccount string

	// Filler carries the item-2 filler bytes when they were non-zero on
	// the wire. Preserved so the transaction round-trips byte-for-byte.
	Filler string
}

func (t *Transaction) EntityNumber() int { return t.Number }

func (t *Transaction) EntityAmount() (decimal.Decimal, bool) {
	return t.Amount, true
}

func (t *Transaction) EntityDate() (time.Time, bool) {
	return t.Date, true
}

// AmountInCents is the transaction amount in øre.
func (t *Transaction) AmountInCents() (int64, error) {
	return converters.ToCents(t.Amount)
}

func transactionFromRecords(bucket []records.Record) (*Transaction, error) {
	item1, item2, rest, err := popAmountItems(bucket)
	if err != nil {
		return nil, err
	}
	if item1.NetsDate == nil {
		return nil, types.NewStructuralError(
			"transaction %d has no processing date", item1.Number,
		)
	}

	var text string
	if len(rest) == 1 {
		if item3, ok := rest[0].(*records.TransactionAmountItem3); ok {
			text = item3.Text
		}
	}

	return &Transaction{
		Type:                          item1.TransactionType,
		Number:                        item1.Number,
		Date:                          *item1.NetsDate,
		Amount:                        converters.FromCents(item1.Amount),
		KID:                           item1.KID,
		Reference:                     item2.Reference,
		Text:                          text,
		CentreID:                      item1.CentreID,
		DayCode:                       item1.DayCode,
		PartialSettlementNumber:       item1.PartialSettlementNumber,
		PartialSettlementSerialNumber: item1.PartialSettlementSerialNumber,
		Sign:                          item1.Sign,
		FormNumber:                    item2.FormNumber,
		BankDate:                      item2.BankDate,
		DebitAccount:                  item2.DebitAccount,
		Filler:                        item2.Filler,
	}, nil
}

// ToRecords renders the transaction's two amount items, plus a third item
// for the transaction types that carry free text.
func (t *Transaction) ToRecords() ([]records.Record, error) {
	cents, err := t.AmountInCents()
	if err != nil {
		return nil, err
	}
	date := t.Date

	item1 := &records.TransactionAmountItem1{
		Service:                       types.ServiceCodeOCRGiro,
		TransactionType:               t.Type,
		Number:                        t.Number,
		NetsDate:                      &date,
		Amount:                        cents,
		KID:                           t.KID,
		CentreID:                      t.CentreID,
		DayCode:                       t.DayCode,
		PartialSettlementNumber:       t.PartialSettlementNumber,
		PartialSettlementSerialNumber: t.PartialSettlementSerialNumber,
		Sign:                          t.Sign,
	}
	item2 := &records.TransactionAmountItem2{
		Service:         types.ServiceCodeOCRGiro,
		TransactionType: t.Type,
		Number:          t.Number,
		Reference:       t.Reference,
		FormNumber:      t.FormNumber,
		BankDate:        t.BankDate,
		DebitAccount:    t.DebitAccount,
		Filler:          t.Filler,
	}
	for _, record := range []records.Record{item1, item2} {
		if err := record.Validate(); err != nil {
			return nil, err
		}
	}
	result := []records.Record{item1, item2}

	if t.Type == types.TransactionTypeReversingWithText ||
		t.Type == types.TransactionTypePurchaseWithText {
		item3 := &records.TransactionAmountItem3{
			TransactionType: t.Type,
			Number:          t.Number,
			Text:            t.Text,
		}
		if err := item3.Validate(); err != nil {
			return nil, err
		}
		result = append(result, item3)
	}
	return result, nil
}
