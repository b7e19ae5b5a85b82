package ledgerport

import (
	"github.com/shopspring/decimal"
)

// AccountCreation is the payload for creating an account.
type AccountCreation struct {
	UserID      string
	AccountType string
	Name        string
	Currency    string
}

// AccountUpdate is the payload for updating an account. Nil fields are
// absent from the request.
type AccountUpdate struct {
	Name                 *string
	Status               *string
	DailyTransferLimit   *string
	MonthlyTransferLimit *string
}

// LimitsPayload carries raw transfer-cap fields as submitted by a caller.
type LimitsPayload struct {
	DailyTransferLimit   string
	MonthlyTransferLimit string
}

// Limits is a validated pair of transfer caps.
type Limits struct {
	Daily   decimal.Decimal
	Monthly decimal.Decimal
}

// ValidateAccountCreation checks an account-creation payload. Fields are
// checked in a fixed order (userId, accountType, name, currency) and the
// first violation is returned.
func ValidateAccountCreation(p AccountCreation) error {
	if p.UserID == "" {
		return &ValidationError{Field: "userId", Reason: "required"}
	}
	if _, err := ParseAccountType(p.AccountType); err != nil {
		return &ValidationError{Field: "accountType", Reason: "must be one of internal, external, crypto"}
	}
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if !SupportedCurrency(p.Currency) {
		return &ValidationError{Field: "currency", Reason: "unsupported currency"}
	}
	return nil
}

// ValidateLimits checks that both transfer caps are present, parse as
// non-negative numbers, and that the monthly cap is at least the daily cap.
func ValidateLimits(p LimitsPayload) (Limits, error) {
	daily, err := parseLimit("dailyTransferLimit", p.DailyTransferLimit)
	if err != nil {
		return Limits{}, err
	}
	monthly, err := parseLimit("monthlyTransferLimit", p.MonthlyTransferLimit)
	if err != nil {
		return Limits{}, err
	}
	if verr := checkLimits(daily, monthly); verr != nil {
		return Limits{}, verr
	}
	return Limits{Daily: daily, Monthly: monthly}, nil
}

func parseLimit(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, &ValidationError{Field: field, Reason: "required"}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Field: field, Reason: "must be a number"}
	}
	if d.IsNegative() {
		return decimal.Decimal{}, &ValidationError{Field: field, Reason: "must be non-negative"}
	}
	return d, nil
}

// checkLimits holds the invariant shared by live validation and migration:
// both caps non-negative, monthly >= daily.
func checkLimits(daily, monthly decimal.Decimal) error {
	if daily.IsNegative() {
		return &ValidationError{Field: "dailyTransferLimit", Reason: "must be non-negative"}
	}
	if monthly.IsNegative() {
		return &ValidationError{Field: "monthlyTransferLimit", Reason: "must be non-negative"}
	}
	if monthly.LessThan(daily) {
		return &ValidationError{Field: "monthlyTransferLimit", Reason: "must be greater than or equal to dailyTransferLimit"}
	}
	return nil
}

// ValidateAccountUpdate checks an account-update payload. At least one
// updatable field must be present. If either limit field is present, the
// missing one defaults to 0 and both are validated together; the validated
// limits are returned, or nil when the update touches no limit.
func ValidateAccountUpdate(p AccountUpdate) (*Limits, error) {
	if p.Name == nil && p.Status == nil && p.DailyTransferLimit == nil && p.MonthlyTransferLimit == nil {
		return nil, &ValidationError{Reason: "no fields to update"}
	}
	if p.Status != nil {
		if _, err := ParseAccountStatus(*p.Status); err != nil {
			return nil, &ValidationError{Field: "status", Reason: "must be one of active, inactive, blocked"}
		}
	}
	if p.DailyTransferLimit == nil && p.MonthlyTransferLimit == nil {
		return nil, nil
	}
	payload := LimitsPayload{DailyTransferLimit: "0", MonthlyTransferLimit: "0"}
	if p.DailyTransferLimit != nil {
		payload.DailyTransferLimit = *p.DailyTransferLimit
	}
	if p.MonthlyTransferLimit != nil {
		payload.MonthlyTransferLimit = *p.MonthlyTransferLimit
	}
	limits, err := ValidateLimits(payload)
	if err != nil {
		return nil, err
	}
	return &limits, nil
}
