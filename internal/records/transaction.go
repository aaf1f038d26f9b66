// =============================================================================
// OCR Giro Codec - Transaction Records
// =============================================================================
//
// The per-transaction payload records. Items 1 and 2 bifurcate entirely on
// service code: OCR Giro lines carry settlement bookkeeping fields, while
// AvtaleGiro lines carry payer-facing fields in the same positions. The
// layout alternatives share a common prefix (service code, transaction
// type, transaction number).
//
// LAYOUTS:
//   TransactionAmountItem1 (record type 30):
//     NY 09 tt 30 | number (7) | date (6) | centre id (2) | day code (2)
//                 | partial settlement number (1) | serial (5) | sign (1)
//                 | amount (17) | kid (25) | zero filler (6)
//     NY 21 tt 30 | number (7) | date (6) | space filler (11)
//                 | amount (17) | kid (25) | zero filler (6)
//   TransactionAmountItem2 (record type 31):
//     NY 09 tt 31 | number (7) | form number (10) | reference (9)
//                 | filler (7) | bank date (6) | debit account (11)
//                 | zero filler (22)
//     NY 21 tt 31 | number (7) | payer name (10) | space filler (25)
//                 | reference (25) | zero filler (5)
//   TransactionAmountItem3 (record type 32):
//     NY 09 tt 32 | number (7) | text (40) | zero filler (25)
//   AvtaleGiroAgreement (record type 70):
//     NY 21 94 70 | number (7) | registration type (1) | kid (25)
//                 | notify (1) | zero filler (38)
//
// =============================================================================

package records

import (
	"time"

	"github.com/kfjeldsa/ocr-giro-codec/internal/converters"
	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
	"github.com/kfjeldsa/ocr-giro-codec/internal/validation"
)

// TransactionRecord is implemented by the records that belong to a single
// transaction and carry its transaction number.
type TransactionRecord interface {
	Record

	// TransactionNumber keys the record to its transaction within the
	// assignment. Unique, but not necessarily contiguous.
	TransactionNumber() int
}

// =============================================================================
// TRANSACTION AMOUNT ITEM 1
// =============================================================================

// TransactionAmountItem1 is the first record of a transaction. It is used
// both for AvtaleGiro and for OCR Giro.
type TransactionAmountItem1 struct {
	// Service is the service code of the transaction.
	Service types.ServiceCode

	// TransactionType tells what kind of transaction this is.
	TransactionType types.TransactionType

	// Number is the transaction number within the assignment.
	Number int

	// NetsDate is the transaction's date: the due date for AvtaleGiro,
	// Nets' processing date for OCR Giro.
	NetsDate *time.Time

	// Amount is the transaction amount in øre.
	Amount int64

	// KID is the customer/invoice identifier. Right-aligned on the wire,
	// max 25 chars. Empty when the field is all spaces.
	KID string

	// The fields below are only used for OCR Giro.

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
}

func (r *TransactionAmountItem1) ServiceCode() types.ServiceCode { return r.Service }
func (r *TransactionAmountItem1) RecordType() types.RecordType {
	return types.RecordTypeTransactionAmountItem1
}
func (r *TransactionAmountItem1) TransactionNumber() int { return r.Number }

func parseTransactionAmountItem1(line string) (Record, error) {
	prefixOK := literalAt(line, 0, "NY") && literalAt(line, 6, "30")
	if prefixOK {
		transactionType, typeOK := digitsAt(line, 4, 6)
		number, numberOK := digitsAt(line, 8, 15)
		rawDate, dateOK := digitsAt(line, 15, 21)
		rawAmount, amountOK := digitsAt(line, 32, 49)
		rawKID, kidOK := digitsOrSpacesAt(line, 49, 74)
		tailOK := zerosAt(line, 74, 80)

		if typeOK && numberOK && dateOK && amountOK && kidOK && tailOK {
			date, dateErr := converters.ToDate(rawDate)
			txType, txTypeErr := transactionTypeField(transactionType)
			if dateErr == nil && txTypeErr == nil {
				num, _ := converters.ToInt(number)
				amount, _ := converters.ToInt64(rawAmount)
				base := &TransactionAmountItem1{
					TransactionType: txType,
					Number:          num,
					NetsDate:        date,
					Amount:          amount,
					KID:             converters.ToSafeString(rawKID),
				}

				// Layout 1: OCR Giro, with settlement bookkeeping fields.
				if literalAt(line, 2, "09") {
					centreID, ok1 := digitsAt(line, 21, 23)
					dayCode, ok2 := digitsAt(line, 23, 25)
					psn, ok3 := digitsAt(line, 25, 26)
					serial, ok4 := digitsAt(line, 26, 31)
					sign, ok5 := signAt(line, 31)
					if ok1 && ok2 && ok3 && ok4 && ok5 {
						base.Service = types.ServiceCodeOCRGiro
						base.CentreID = centreID
						base.DayCode, _ = converters.ToInt(dayCode)
						base.PartialSettlementNumber, _ = converters.ToInt(psn)
						base.PartialSettlementSerialNumber = serial
						base.Sign = sign
						return base, base.Validate()
					}
				}

				// Layout 2: AvtaleGiro, the settlement slots are blank.
				if literalAt(line, 2, "21") && spacesAt(line, 21, 32) {
					base.Service = types.ServiceCodeAvtaleGiro
					return base, base.Validate()
				}
			}
		}
	}
	return nil, noMatch(line, "TransactionAmountItem1")
}

func transactionTypeField(raw string) (types.TransactionType, error) {
	value, err := converters.ToInt(raw)
	if err != nil {
		return 0, err
	}
	return types.TransactionTypeFromInt(value)
}

// Validate re-checks the record's field constraints.
func (r *TransactionAmountItem1) Validate() error {
	if err := validation.StrOfMaxLength("kid", r.KID, 25); err != nil {
		return err
	}
	if r.Service == types.ServiceCodeOCRGiro {
		if err := validation.StrOfLength("centre_id", r.CentreID, 2); err != nil {
			return err
		}
		if err := validation.StrOfLength(
			"partial_settlement_serial_number", r.PartialSettlementSerialNumber, 5,
		); err != nil {
			return err
		}
		return validation.StrOfLength("sign", r.Sign, 1)
	}
	return nil
}

// ToOCR renders the record as an exact 80-char OCR line.
func (r *TransactionAmountItem1) ToOCR() string {
	var serviceFields string
	if r.Service == types.ServiceCodeOCRGiro {
		serviceFields = r.CentreID +
			converters.FormatInt(r.DayCode, 2) +
			converters.FormatInt(r.PartialSettlementNumber, 1) +
			r.PartialSettlementSerialNumber +
			r.Sign
	} else {
		serviceFields = converters.Spaces(11)
	}

	return "NY" +
		converters.FormatInt(int(r.Service), 2) +
		converters.FormatInt(int(r.TransactionType), 2) +
		"30" +
		converters.FormatInt(r.Number, 7) +
		converters.FormatDate(r.NetsDate) +
		serviceFields +
		converters.FormatInt64(r.Amount, 17) +
		converters.PadLeft(r.KID, 25) +
		converters.Zeros(6)
}

// =============================================================================
// TRANSACTION AMOUNT ITEM 2
// =============================================================================

// TransactionAmountItem2 is the second record of a transaction. It is used
// both for AvtaleGiro and for OCR Giro.
type TransactionAmountItem2 struct {
	// Service is the service code of the transaction.
	Service types.ServiceCode

	// TransactionType tells what kind of transaction this is.
	TransactionType types.TransactionType

	// Number is the transaction number within the assignment.
	Number int

	// Reference depends on the payment method for OCR Giro; for AvtaleGiro
	// it is the payee's free-form statement line, max 25 chars.
	Reference string

	// The fields below are only used for OCR Giro.

	// FormNumber is the giro form number. String of 10 digits.
	FormNumber string

	// BankDate is the date the bank registered the payment.
	BankDate *time.Time

	// DebitAccount is the payer's account. String of 11 digits.
	DebitAccount string

	// Filler is documented as a filler field but observed carrying
	// bank-specific data in "from giro debited account" transactions.
	// It is preserved on parse and re-emitted as-is; zeros are written
	// when it is absent.
	Filler string

	// PayerName is only used for AvtaleGiro. Truncated to 10 chars on the
	// wire.
	PayerName string
}

func (r *TransactionAmountItem2) ServiceCode() types.ServiceCode { return r.Service }
func (r *TransactionAmountItem2) RecordType() types.RecordType {
	return types.RecordTypeTransactionAmountItem2
}
func (r *TransactionAmountItem2) TransactionNumber() int { return r.Number }

func parseTransactionAmountItem2(line string) (Record, error) {
	prefixOK := literalAt(line, 0, "NY") && literalAt(line, 6, "31")
	if prefixOK {
		transactionType, typeOK := digitsAt(line, 4, 6)
		number, numberOK := digitsAt(line, 8, 15)
		txType, txTypeErr := types.TransactionType(0), error(nil)
		if typeOK {
			txType, txTypeErr = transactionTypeField(transactionType)
		}

		if typeOK && numberOK && txTypeErr == nil {
			num, _ := converters.ToInt(number)

			// Layout 1: OCR Giro.
			if literalAt(line, 2, "09") {
				formNumber, ok1 := digitsAt(line, 15, 25)
				reference, ok2 := digitsAt(line, 25, 34)
				rawBankDate, ok3 := digitsAt(line, 41, 47)
				debitAccount, ok4 := digitsAt(line, 47, 58)
				if ok1 && ok2 && ok3 && ok4 && zerosAt(line, 58, 80) {
					bankDate, err := converters.ToDate(rawBankDate)
					if err == nil {
						filler := line[34:41]
						if converters.IsZeros(filler) {
							filler = ""
						}
						record := &TransactionAmountItem2{
							Service:         types.ServiceCodeOCRGiro,
							TransactionType: txType,
							Number:          num,
							Reference:       converters.ToSafeString(reference),
							FormNumber:      formNumber,
							BankDate:        bankDate,
							DebitAccount:    debitAccount,
							Filler:          filler,
						}
						return record, record.Validate()
					}
				}
			}

			// Layout 2: AvtaleGiro.
			if literalAt(line, 2, "21") &&
				spacesAt(line, 25, 50) && zerosAt(line, 75, 80) {
				record := &TransactionAmountItem2{
					Service:         types.ServiceCodeAvtaleGiro,
					TransactionType: txType,
					Number:          num,
					PayerName:       converters.ToSafeString(line[15:25]),
					Reference:       converters.ToSafeString(line[50:75]),
				}
				return record, record.Validate()
			}
		}
	}
	return nil, noMatch(line, "TransactionAmountItem2")
}

// Validate re-checks the record's field constraints.
func (r *TransactionAmountItem2) Validate() error {
	if r.Service == types.ServiceCodeOCRGiro {
		if err := validation.StrOfLength("form_number", r.FormNumber, 10); err != nil {
			return err
		}
		if err := validation.StrOfLength("debit_account", r.DebitAccount, 11); err != nil {
			return err
		}
		return validation.OptionalStrOfLength("filler", r.Filler, 7)
	}
	return validation.StrOfMaxLength("reference", r.Reference, 25)
}

// ToOCR renders the record as an exact 80-char OCR line.
func (r *TransactionAmountItem2) ToOCR() string {
	common := "NY" +
		converters.FormatInt(int(r.Service), 2) +
		converters.FormatInt(int(r.TransactionType), 2) +
		"31" +
		converters.FormatInt(r.Number, 7)

	var serviceFields string
	switch r.Service {
	case types.ServiceCodeOCRGiro:
		reference := converters.Spaces(9)
		if r.Reference != "" {
			reference = converters.PadRight(r.Reference, 9)
		}
		filler := converters.Zeros(7)
		if r.Filler != "" {
			filler = r.Filler
		}
		serviceFields = r.FormNumber +
			reference +
			filler +
			converters.FormatDate(r.BankDate) +
			r.DebitAccount +
			converters.Zeros(22)
	case types.ServiceCodeAvtaleGiro:
		payerName := r.PayerName
		if len(payerName) > 10 {
			payerName = payerName[:10]
		}
		serviceFields = converters.PadRight(payerName, 10) +
			converters.Spaces(25) +
			converters.PadRight(r.Reference, 25) +
			converters.Zeros(5)
	default:
		serviceFields = converters.Spaces(35)
	}

	return common + serviceFields
}

// =============================================================================
// TRANSACTION AMOUNT ITEM 3
// =============================================================================

// TransactionAmountItem3 is the third record of a transaction. It is only
// used for some OCR Giro transaction types.
type TransactionAmountItem3 struct {
	// TransactionType tells what kind of transaction this is.
	TransactionType types.TransactionType

	// Number is the transaction number within the assignment.
	Number int

	// Text is up to 40 chars of free text from the payment terminal.
	Text string
}

func (r *TransactionAmountItem3) ServiceCode() types.ServiceCode {
	return types.ServiceCodeOCRGiro
}
func (r *TransactionAmountItem3) RecordType() types.RecordType {
	return types.RecordTypeTransactionAmountItem3
}
func (r *TransactionAmountItem3) TransactionNumber() int { return r.Number }

func parseTransactionAmountItem3(line string) (Record, error) {
	for {
		if !literalAt(line, 0, "NY09") || !literalAt(line, 6, "32") {
			break
		}
		transactionType, ok := digitsAt(line, 4, 6)
		if !ok {
			break
		}
		number, ok := digitsAt(line, 8, 15)
		if !ok {
			break
		}
		if !zerosAt(line, 55, 80) {
			break
		}
		txType, err := transactionTypeField(transactionType)
		if err != nil {
			break
		}

		num, _ := converters.ToInt(number)
		record := &TransactionAmountItem3{
			TransactionType: txType,
			Number:          num,
			Text:            converters.ToSafeString(line[15:55]),
		}
		return record, record.Validate()
	}
	return nil, noMatch(line, "TransactionAmountItem3")
}

// Validate re-checks the record's field constraints.
func (r *TransactionAmountItem3) Validate() error {
	return validation.StrOfMaxLength("text", r.Text, 40)
}

// ToOCR renders the record as an exact 80-char OCR line.
func (r *TransactionAmountItem3) ToOCR() string {
	return "NY09" +
		converters.FormatInt(int(r.TransactionType), 2) +
		"32" +
		converters.FormatInt(r.Number, 7) +
		converters.PadRight(r.Text, 40) +
		converters.Zeros(25)
}

// =============================================================================
// AVTALEGIRO AGREEMENT
// =============================================================================

// AvtaleGiroAgreement is used by Nets to notify about agreement changes:
// new or deleted agreements, and updates to the payer's notification
// preference. One record is one logical transaction; it has no amount
// items.
type AvtaleGiroAgreement struct {
	// Number is the transaction number within the assignment.
	Number int

	// RegistrationType tells what kind of agreement update this is.
	RegistrationType types.AvtaleGiroRegistrationType

	// KID is the customer/invoice identifier the agreement covers.
	KID string

	// Notify is whether the payer wants notification about payment
	// requests.
	Notify bool
}

func (r *AvtaleGiroAgreement) ServiceCode() types.ServiceCode {
	return types.ServiceCodeAvtaleGiro
}
func (r *AvtaleGiroAgreement) RecordType() types.RecordType {
	return types.RecordTypeTransactionAgreements
}
func (r *AvtaleGiroAgreement) TransactionNumber() int { return r.Number }

// TransactionType is always AVTALEGIRO_AGREEMENT for this record.
func (r *AvtaleGiroAgreement) TransactionType() types.TransactionType {
	return types.TransactionTypeAvtaleGiroAgreement
}

func parseAvtaleGiroAgreement(line string) (Record, error) {
	for {
		if !literalAt(line, 0, "NY2194") || !literalAt(line, 6, "70") {
			break
		}
		number, ok := digitsAt(line, 8, 15)
		if !ok {
			break
		}
		registrationType, ok := digitsAt(line, 15, 16)
		if !ok {
			break
		}
		kid, ok := digitsOrSpacesAt(line, 16, 41)
		if !ok {
			break
		}
		notify, err := converters.ToBool(line[41:42])
		if err != nil {
			break
		}
		if !zerosAt(line, 42, 80) {
			break
		}
		regValue, _ := converters.ToInt(registrationType)
		regType, err := types.RegistrationTypeFromInt(regValue)
		if err != nil {
			break
		}

		num, _ := converters.ToInt(number)
		record := &AvtaleGiroAgreement{
			Number:           num,
			RegistrationType: regType,
			KID:              converters.ToSafeString(kid),
			Notify:           notify,
		}
		return record, record.Validate()
	}
	return nil, noMatch(line, "AvtaleGiroAgreement")
}

// Validate re-checks the record's field constraints.
func (r *AvtaleGiroAgreement) Validate() error {
	return validation.StrOfMaxLength("kid", r.KID, 25)
}

// ToOCR renders the record as an exact 80-char OCR line.
func (r *AvtaleGiroAgreement) ToOCR() string {
	return "NY219470" +
		converters.FormatInt(r.Number, 7) +
		converters.FormatInt(int(r.RegistrationType), 1) +
		converters.PadLeft(r.KID, 25) +
		converters.FormatBool(r.Notify) +
		converters.Zeros(38)
}
