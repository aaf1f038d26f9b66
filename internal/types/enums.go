// =============================================================================
// OCR Giro Codec - Shared Enumerations
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - records
//   - objects
//   - validation
//
// All codes below come from Nets' "OCR giro" and "AvtaleGiro" file format
// specifications. The code sets are closed: the format is fixed, so new
// values never appear at runtime.
//
// =============================================================================

package types

import "fmt"

// NetsID is Nets' own data sender/recipient ID. It is the value normally
// used for the data recipient field of outgoing transmissions.
const NetsID = "00008080"

// =============================================================================
// SERVICE CODES
// =============================================================================

// ServiceCode tells which Nets service a record applies to.
type ServiceCode int

const (
	// ServiceCodeNone is used for the transmission start and end record.
	ServiceCodeNone ServiceCode = 0

	// ServiceCodeOCRGiro is used for all OCR Giro records.
	ServiceCodeOCRGiro ServiceCode = 9

	// ServiceCodeAvtaleGiro is used for all AvtaleGiro records.
	ServiceCodeAvtaleGiro ServiceCode = 21
)

// ServiceCodeFromInt maps a raw two-digit value to a ServiceCode.
func ServiceCodeFromInt(value int) (ServiceCode, error) {
	switch sc := ServiceCode(value); sc {
	case ServiceCodeNone, ServiceCodeOCRGiro, ServiceCodeAvtaleGiro:
		return sc, nil
	default:
		return 0, fmt.Errorf("unknown service code: %02d", value)
	}
}

func (sc ServiceCode) String() string {
	switch sc {
	case ServiceCodeNone:
		return "NONE"
	case ServiceCodeOCRGiro:
		return "OCR_GIRO"
	case ServiceCodeAvtaleGiro:
		return "AVTALEGIRO"
	default:
		return fmt.Sprintf("ServiceCode(%d)", int(sc))
	}
}

// =============================================================================
// RECORD TYPES
// =============================================================================

// RecordType is the two-digit discriminator found at byte offset 6 of every
// line. It tells what type of record the line is.
type RecordType int

const (
	RecordTypeTransmissionStart      RecordType = 10
	RecordTypeAssignmentStart        RecordType = 20
	RecordTypeTransactionAmountItem1 RecordType = 30
	RecordTypeTransactionAmountItem2 RecordType = 31
	RecordTypeTransactionAmountItem3 RecordType = 32
	RecordTypeTransactionSpec        RecordType = 49
	RecordTypeTransactionAgreements  RecordType = 70
	RecordTypeAssignmentEnd          RecordType = 88
	RecordTypeTransmissionEnd        RecordType = 89
)

func (rt RecordType) String() string {
	switch rt {
	case RecordTypeTransmissionStart:
		return "TransmissionStart"
	case RecordTypeAssignmentStart:
		return "AssignmentStart"
	case RecordTypeTransactionAmountItem1:
		return "TransactionAmountItem1"
	case RecordTypeTransactionAmountItem2:
		return "TransactionAmountItem2"
	case RecordTypeTransactionAmountItem3:
		return "TransactionAmountItem3"
	case RecordTypeTransactionSpec:
		return "TransactionSpecification"
	case RecordTypeTransactionAgreements:
		return "AvtaleGiroAgreement"
	case RecordTypeAssignmentEnd:
		return "AssignmentEnd"
	case RecordTypeTransmissionEnd:
		return "TransmissionEnd"
	default:
		return fmt.Sprintf("RecordType(%d)", int(rt))
	}
}

// =============================================================================
// ASSIGNMENT TYPES
// =============================================================================

// AssignmentType tells what type of assignment an assignment is.
type AssignmentType int

const (
	// AssignmentTypeTransactions is used both for AvtaleGiro payment
	// requests and OCR Giro transactions.
	AssignmentTypeTransactions AssignmentType = 0

	// AssignmentTypeAvtaleGiroAgreements is used for AvtaleGiro agreement
	// updates.
	AssignmentTypeAvtaleGiroAgreements AssignmentType = 24

	// AssignmentTypeAvtaleGiroCancellations is used for AvtaleGiro
	// cancellations.
	AssignmentTypeAvtaleGiroCancellations AssignmentType = 36
)

// AssignmentTypeFromInt maps a raw two-digit value to an AssignmentType.
func AssignmentTypeFromInt(value int) (AssignmentType, error) {
	switch at := AssignmentType(value); at {
	case AssignmentTypeTransactions,
		AssignmentTypeAvtaleGiroAgreements,
		AssignmentTypeAvtaleGiroCancellations:
		return at, nil
	default:
		return 0, fmt.Errorf("unknown assignment type: %02d", value)
	}
}

func (at AssignmentType) String() string {
	switch at {
	case AssignmentTypeTransactions:
		return "TRANSACTIONS"
	case AssignmentTypeAvtaleGiroAgreements:
		return "AVTALEGIRO_AGREEMENTS"
	case AssignmentTypeAvtaleGiroCancellations:
		return "AVTALEGIRO_CANCELLATIONS"
	default:
		return fmt.Sprintf("AssignmentType(%d)", int(at))
	}
}

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// TransactionType tells what type of transaction a transaction is.
type TransactionType int

const (
	// OCR Giro transaction types (10-21).
	TransactionTypeFromGiroDebitedAccount   TransactionType = 10
	TransactionTypeFromStandingOrders       TransactionType = 11
	TransactionTypeFromDirectRemittance     TransactionType = 12
	TransactionTypeFromBusinessTerminalGiro TransactionType = 13
	TransactionTypeFromCounterGiro          TransactionType = 14
	TransactionTypeFromAvtaleGiro           TransactionType = 15
	TransactionTypeFromTelegiro             TransactionType = 16
	TransactionTypeFromCashGiro             TransactionType = 17
	TransactionTypeReversingWithKID         TransactionType = 18
	TransactionTypePurchaseWithKID          TransactionType = 19
	TransactionTypeReversingWithText        TransactionType = 20

	// PurchaseWithText shares the value 21 with
	// AvtaleGiroWithBankNotification. The service code of the surrounding
	// records disambiguates the two.
	TransactionTypePurchaseWithText TransactionType = 21

	// AvtaleGiroWithPayeeNotification is used for AvtaleGiro when the payee
	// notifies the payer themselves.
	TransactionTypeAvtaleGiroWithPayeeNotification TransactionType = 2

	// AvtaleGiroWithBankNotification is used for AvtaleGiro when the bank
	// notifies the payer.
	TransactionTypeAvtaleGiroWithBankNotification TransactionType = 21

	// AvtaleGiroCancellation is used for transactions that are part of an
	// AvtaleGiro cancellation assignment.
	TransactionTypeAvtaleGiroCancellation TransactionType = 93

	// AvtaleGiroAgreement is used by Nets for updates to AvtaleGiro
	// agreements.
	TransactionTypeAvtaleGiroAgreement TransactionType = 94
)

// TransactionTypeFromInt maps a raw two-digit value to a TransactionType.
func TransactionTypeFromInt(value int) (TransactionType, error) {
	if (value >= 10 && value <= 21) || value == 2 || value == 93 || value == 94 {
		return TransactionType(value), nil
	}
	return 0, fmt.Errorf("unknown transaction type: %02d", value)
}

// =============================================================================
// AVTALEGIRO REGISTRATION TYPES
// =============================================================================

// AvtaleGiroRegistrationType tells what kind of agreement update an
// AvtaleGiroAgreement record carries.
type AvtaleGiroRegistrationType int

const (
	// RegistrationTypeActiveAgreement is used when the agreement assignment
	// contains all currently active agreements.
	RegistrationTypeActiveAgreement AvtaleGiroRegistrationType = 0

	// RegistrationTypeNewOrUpdatedAgreement is used when the agreement
	// assignment contains only changes and the current agreement is new or
	// updated.
	RegistrationTypeNewOrUpdatedAgreement AvtaleGiroRegistrationType = 1

	// RegistrationTypeDeletedAgreement is used when the agreement assignment
	// contains only changes and the current agreement has been deleted.
	RegistrationTypeDeletedAgreement AvtaleGiroRegistrationType = 2
)

// RegistrationTypeFromInt maps a raw one-digit value to an
// AvtaleGiroRegistrationType.
func RegistrationTypeFromInt(value int) (AvtaleGiroRegistrationType, error) {
	switch rt := AvtaleGiroRegistrationType(value); rt {
	case RegistrationTypeActiveAgreement,
		RegistrationTypeNewOrUpdatedAgreement,
		RegistrationTypeDeletedAgreement:
		return rt, nil
	default:
		return 0, fmt.Errorf("unknown registration type: %d", value)
	}
}
