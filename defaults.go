package ledgerport

import "github.com/shopspring/decimal"

// The default limit policy applies when a source account carries no transfer
// caps. The table is total over (account type, currency): unknown
// combinations fall back to the most conservative tier.

type limitTier struct {
	daily   int64
	monthly int64
}

var (
	fiatInternalTier = limitTier{daily: 5_000, monthly: 50_000}
	fiatExternalTier = limitTier{daily: 10_000, monthly: 100_000}
	cryptoTier       = limitTier{daily: 50_000, monthly: 500_000}
	conservativeTier = limitTier{daily: 1_000, monthly: 10_000}
)

var defaultTiers = map[AccountType]map[string]limitTier{
	AccountInternal: {
		USD: fiatInternalTier,
		EUR: fiatInternalTier,
	},
	AccountExternal: {
		USD: fiatExternalTier,
		EUR: fiatExternalTier,
	},
	AccountCrypto: {
		USDT: cryptoTier,
	},
}

// DefaultLimits returns the transfer caps for an account with no explicit
// limits in the source record.
func DefaultLimits(t AccountType, currency string) Limits {
	tier, ok := defaultTiers[t][currency]
	if !ok {
		tier = conservativeTier
	}
	return Limits{
		Daily:   decimal.NewFromInt(tier.daily),
		Monthly: decimal.NewFromInt(tier.monthly),
	}
}

// mergeLimits returns the effective caps for a source account: explicit
// limits when present, the default policy otherwise. A present half fills
// the missing half from the policy tier. The input record is not modified.
func mergeLimits(acc SourceAccount, t AccountType) Limits {
	limits := DefaultLimits(t, acc.Currency)
	if acc.DailyTransferLimit != nil {
		limits.Daily = *acc.DailyTransferLimit
	}
	if acc.MonthlyTransferLimit != nil {
		limits.Monthly = *acc.MonthlyTransferLimit
	}
	return limits
}
