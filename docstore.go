package ledgerport

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DumpSource reads a document-store export from a directory holding
// users.jsonl, accounts.jsonl and transactions.jsonl. Export shapes vary
// between dump tools (flat fields, nested objects, extended-JSON wrappers
// like {"$oid": ...} and {"$date": ...}), so fields are extracted
// jsonpath-first over a list of candidate paths instead of a rigid struct.
type DumpSource struct {
	Dir string
}

func (s *DumpSource) ListUsers(ctx context.Context) ([]SourceUser, error) {
	var users []SourceUser
	err := s.scan("users.jsonl", func(doc any) error {
		id, ok := jstring(doc, "$._id", "$.id")
		if !ok {
			return fmt.Errorf("user document has no id")
		}
		u := SourceUser{ID: id}
		u.Name, _ = jstring(doc, "$.name", "$.fullName")
		u.Email, _ = jstring(doc, "$.email")
		u.PasswordHash, _ = jstring(doc, "$.passwordHash", "$.password")
		u.Role, _ = jstring(doc, "$.role")
		u.DocumentType, _ = jstring(doc, "$.documentType", "$.document.type")
		u.DocumentNumber, _ = jstring(doc, "$.documentNumber", "$.document.number")
		u.Status, _ = jstring(doc, "$.status")
		u.CreatedAt = jtime(doc, "$.createdAt", "$.created_at")
		u.UpdatedAt = jtime(doc, "$.updatedAt", "$.updated_at")
		users = append(users, u)
		return nil
	})
	return users, err
}

func (s *DumpSource) ListAccounts(ctx context.Context) ([]SourceAccount, error) {
	var accounts []SourceAccount
	err := s.scan("accounts.jsonl", func(doc any) error {
		id, ok := jstring(doc, "$._id", "$.id")
		if !ok {
			return fmt.Errorf("account document has no id")
		}
		a := SourceAccount{ID: id}
		a.UserID, _ = jstring(doc, "$.userId", "$.user_id", "$.user")
		a.Number, _ = jstring(doc, "$.number", "$.accountNumber")
		a.Type, _ = jstring(doc, "$.type", "$.accountType")
		a.Name, _ = jstring(doc, "$.name")
		a.Currency, _ = jstring(doc, "$.currency")
		a.Status, _ = jstring(doc, "$.status")
		if balance, ok := jdecimal(doc, "$.balance"); ok {
			a.Balance = balance
		}
		if daily, ok := jdecimal(doc, "$.dailyTransferLimit", "$.limits.dailyTransferLimit", "$.limits.daily"); ok {
			a.DailyTransferLimit = &daily
		}
		if monthly, ok := jdecimal(doc, "$.monthlyTransferLimit", "$.limits.monthlyTransferLimit", "$.limits.monthly"); ok {
			a.MonthlyTransferLimit = &monthly
		}
		a.CreatedAt = jtime(doc, "$.createdAt", "$.created_at")
		a.UpdatedAt = jtime(doc, "$.updatedAt", "$.updated_at")
		accounts = append(accounts, a)
		return nil
	})
	return accounts, err
}

func (s *DumpSource) ListTransactions(ctx context.Context) ([]SourceTransaction, error) {
	var transactions []SourceTransaction
	err := s.scan("transactions.jsonl", func(doc any) error {
		id, ok := jstring(doc, "$._id", "$.id")
		if !ok {
			return fmt.Errorf("transaction document has no id")
		}
		t := SourceTransaction{ID: id}
		t.SourceAccountID, _ = jstring(doc, "$.sourceAccountId", "$.source_account_id", "$.from")
		t.DestinationAccountID, _ = jstring(doc, "$.destinationAccountId", "$.destination_account_id", "$.to")
		if amount, ok := jdecimal(doc, "$.amount"); ok {
			t.Amount = amount
		}
		t.Currency, _ = jstring(doc, "$.currency")
		t.Type, _ = jstring(doc, "$.type")
		t.Status, _ = jstring(doc, "$.status")
		t.Description, _ = jstring(doc, "$.description")
		t.CreatedAt = jtime(doc, "$.createdAt", "$.created_at", "$.timestamp")
		transactions = append(transactions, t)
		return nil
	})
	return transactions, err
}

// scan decodes a JSONL dump file line by line and hands each document to fn.
func (s *DumpSource) scan(name string, fn func(doc any) error) error {
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return fmt.Errorf("could not open dump file %s: %w", name, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue // Skip empty lines
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("%s:%d: malformed document: %w", name, line, err)
		}
		if err := fn(doc); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read dump file %s: %w", name, err)
	}
	return nil
}

// jget returns the first value found under the candidate paths.
func jget(doc any, paths ...string) (any, bool) {
	for _, path := range paths {
		jval, err := jsonpath.Get(path, doc)
		if err != nil {
			continue
		}
		// jsonpath is never clear about whether it returns a list of one
		// answer or a single answer: keep the first one if any.
		if jlist, ok := jval.([]any); ok {
			if len(jlist) == 0 {
				continue
			}
			jval = jlist[0]
		}
		if jval == nil {
			continue
		}
		return jval, true
	}
	return nil, false
}

// jstring extracts a string field, unwrapping {"$oid": ...} identifiers.
func jstring(doc any, paths ...string) (string, bool) {
	jval, ok := jget(doc, paths...)
	if !ok {
		return "", false
	}
	if m, ok := jval.(map[string]any); ok {
		jval = m["$oid"]
	}
	s, ok := jval.(string)
	return s, ok
}

// jdecimal extracts a numeric field given as a float, a string, or an
// extended-JSON {"$numberDecimal": ...} wrapper.
func jdecimal(doc any, paths ...string) (decimal.Decimal, bool) {
	jval, ok := jget(doc, paths...)
	if !ok {
		return decimal.Decimal{}, false
	}
	if m, ok := jval.(map[string]any); ok {
		jval = m["$numberDecimal"]
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// jtime extracts a timestamp given as an RFC 3339 string or an extended-JSON
// {"$date": ...} wrapper. A missing or malformed field yields the zero time.
func jtime(doc any, paths ...string) time.Time {
	jval, ok := jget(doc, paths...)
	if !ok {
		return time.Time{}
	}
	if m, ok := jval.(map[string]any); ok {
		jval = m["$date"]
	}
	s, ok := jval.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
