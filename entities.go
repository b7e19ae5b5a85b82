package ledgerport

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntityKind identifies one of the migrated entity families. It scopes
// identity mappings and tags per-record outcomes.
type EntityKind string

const (
	KindUser        EntityKind = "user"
	KindAccount     EntityKind = "account"
	KindTransaction EntityKind = "transaction"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountInternal AccountType = "internal"
	AccountExternal AccountType = "external"
	AccountCrypto   AccountType = "crypto"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountInternal, AccountExternal, AccountCrypto:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("unknown account type: %q", s)
	}
}

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
	StatusBlocked  AccountStatus = "blocked"
)

// ParseAccountStatus parses a string into an AccountStatus.
func ParseAccountStatus(s string) (AccountStatus, error) {
	switch AccountStatus(s) {
	case StatusActive, StatusInactive, StatusBlocked:
		return AccountStatus(s), nil
	default:
		return "", fmt.Errorf("unknown account status: %q", s)
	}
}

// TransactionStatus is the settlement status of a transaction.
type TransactionStatus string

const (
	TxCompleted TransactionStatus = "completed"
	TxPending   TransactionStatus = "pending"
	TxFailed    TransactionStatus = "failed"
)

// Supported currencies. The set is extensible; these are the ones the
// default limit policy knows about.
const (
	USD  = "USD"
	EUR  = "EUR"
	USDT = "USDT"
)

// SupportedCurrency reports whether the engine knows this currency code.
func SupportedCurrency(code string) bool {
	switch code {
	case USD, EUR, USDT:
		return true
	}
	return false
}

// SourceUser is a user record as read from the document source store.
type SourceUser struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"passwordHash"` // opaque, copied verbatim
	Role           string    `json:"role"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TargetUser is a migrated user. SourceID keeps the provenance so a later
// run can rebuild the identity mapping from the target store alone.
type TargetUser struct {
	ID             string    `json:"id"`
	SourceID       string    `json:"sourceId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"passwordHash"`
	Role           string    `json:"role"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SourceAccount is an account record as read from the document source store.
// Limits are pointers: absent in many historical documents, in which case
// migration applies the default limit policy.
type SourceAccount struct {
	ID                   string           `json:"id"`
	UserID               string           `json:"userId"`
	Number               string           `json:"number"` // human-facing, stable across stores
	Type                 string           `json:"type"`
	Name                 string           `json:"name"`
	Currency             string           `json:"currency"`
	Balance              decimal.Decimal  `json:"balance"`
	Status               string           `json:"status"`
	DailyTransferLimit   *decimal.Decimal `json:"dailyTransferLimit,omitempty"`
	MonthlyTransferLimit *decimal.Decimal `json:"monthlyTransferLimit,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// TargetAccount is a migrated account. UserID refers to the migrated owner.
// Transfer totals are derived by aggregate recomputation, not copied.
type TargetAccount struct {
	ID                   string          `json:"id"`
	SourceID             string          `json:"sourceId"`
	UserID               string          `json:"userId"`
	Number               string          `json:"number"`
	Type                 AccountType     `json:"type"`
	Name                 string          `json:"name"`
	Currency             string          `json:"currency"`
	Balance              decimal.Decimal `json:"balance"`
	Status               AccountStatus   `json:"status"`
	DailyTransferLimit   decimal.Decimal `json:"dailyTransferLimit"`
	MonthlyTransferLimit decimal.Decimal `json:"monthlyTransferLimit"`
	DailyTransferTotal   decimal.Decimal `json:"dailyTransferTotal"`
	MonthlyTransferTotal decimal.Decimal `json:"monthlyTransferTotal"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// SourceTransaction is a transfer record as read from the source store.
type SourceTransaction struct {
	ID                   string          `json:"id"`
	SourceAccountID      string          `json:"sourceAccountId"`
	DestinationAccountID string          `json:"destinationAccountId"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Type                 string          `json:"type"`
	Status               string          `json:"status"`
	Description          string          `json:"description"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// TargetTransaction is a migrated transfer. Account references are remapped
// to target ids, and the target-side account numbers are denormalized for
// downstream reporting.
type TargetTransaction struct {
	ID                       string            `json:"id"`
	SourceID                 string            `json:"sourceId"`
	SourceAccountID          string            `json:"sourceAccountId"`
	DestinationAccountID     string            `json:"destinationAccountId"`
	SourceAccountNumber      string            `json:"sourceAccountNumber"`
	DestinationAccountNumber string            `json:"destinationAccountNumber"`
	Amount                   decimal.Decimal   `json:"amount"`
	Currency                 string            `json:"currency"`
	Type                     string            `json:"type"`
	Status                   TransactionStatus `json:"status"`
	Description              string            `json:"description"`
	CreatedAt                time.Time         `json:"createdAt"`
}
