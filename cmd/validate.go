package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ledger-tools/ledgerport"
)

// validateCmd holds the flags for the 'validate' subcommand.
type validateCmd struct {
	userID      string
	accountType string
	name        string
	currency    string
	daily       string
	monthly     string
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "validate an account payload before migration" }
func (*validateCmd) Usage() string {
	return `lpt validate -user <id> -type <type> -name <name> -currency <ccy> [-daily n] [-monthly n]

  Runs the account-creation and transfer-limit checks on a payload and
  reports the first violation, or the effective limits when valid.
  Omitted limits fall back to the defaults for the account type.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.userID, "user", "", "owning user id")
	f.StringVar(&c.accountType, "type", "", "account type (internal, external, crypto)")
	f.StringVar(&c.name, "name", "", "account display name")
	f.StringVar(&c.currency, "currency", "", "account currency (USD, EUR, USDT)")
	f.StringVar(&c.daily, "daily", "", "daily transfer limit")
	f.StringVar(&c.monthly, "monthly", "", "monthly transfer limit")
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	payload := ledgerport.AccountCreation{
		UserID:      c.userID,
		AccountType: c.accountType,
		Name:        c.name,
		Currency:    c.currency,
	}
	if err := ledgerport.ValidateAccountCreation(payload); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		return subcommands.ExitFailure
	}

	limits, err := c.effectiveLimits()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Valid. Effective limits: daily %s, monthly %s %s\n",
		limits.Daily.String(), limits.Monthly.String(), c.currency)
	return subcommands.ExitSuccess
}

func (c *validateCmd) effectiveLimits() (ledgerport.Limits, error) {
	if c.daily == "" && c.monthly == "" {
		t, err := ledgerport.ParseAccountType(c.accountType)
		if err != nil {
			return ledgerport.Limits{}, err
		}
		return ledgerport.DefaultLimits(t, c.currency), nil
	}
	return ledgerport.ValidateLimits(ledgerport.LimitsPayload{
		DailyTransferLimit:   c.daily,
		MonthlyTransferLimit: c.monthly,
	})
}
