package ledgerport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// MemStore is an in-memory target store. It backs tests and dry runs, and
// is the store the `lpt` tool snapshots to disk between runs.
type MemStore struct {
	mu           sync.RWMutex
	users        []TargetUser
	accounts     []TargetAccount
	transactions []TargetTransaction
}

// NewMemStore creates an empty target store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) InsertUser(ctx context.Context, u TargetUser) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = fmt.Sprintf("%d", len(s.users)+1)
	s.users = append(s.users, u)
	return u.ID, nil
}

func (s *MemStore) InsertAccount(ctx context.Context, a TargetAccount) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = fmt.Sprintf("%d", len(s.accounts)+1)
	s.accounts = append(s.accounts, a)
	return a.ID, nil
}

func (s *MemStore) InsertTransaction(ctx context.Context, t TargetTransaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = fmt.Sprintf("%d", len(s.transactions)+1)
	s.transactions = append(s.transactions, t)
	return t.ID, nil
}

func (s *MemStore) UpdateAccountTotals(ctx context.Context, accountID string, totals Totals) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].DailyTransferTotal = totals.Daily
			s.accounts[i].MonthlyTransferTotal = totals.Monthly
			return nil
		}
	}
	return fmt.Errorf("account %q not found", accountID)
}

func (s *MemStore) Users(ctx context.Context) ([]TargetUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TargetUser, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemStore) Accounts(ctx context.Context) ([]TargetAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TargetAccount, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

func (s *MemStore) Transactions(ctx context.Context) ([]TargetTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TargetTransaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

// snapshot is the on-disk shape of a MemStore.
type snapshot struct {
	Users        []TargetUser        `json:"users"`
	Accounts     []TargetAccount     `json:"accounts"`
	Transactions []TargetTransaction `json:"transactions"`
}

// EncodeTarget writes the store content as an indented JSON snapshot.
func EncodeTarget(w io.Writer, s *MemStore) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot{Users: s.users, Accounts: s.accounts, Transactions: s.transactions}); err != nil {
		return fmt.Errorf("could not encode target snapshot: %w", err)
	}
	return nil
}

// DecodeTarget reads a JSON snapshot back into a MemStore.
func DecodeTarget(r io.Reader) (*MemStore, error) {
	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("could not decode target snapshot: %w", err)
	}
	return &MemStore{users: snap.Users, accounts: snap.Accounts, transactions: snap.Transactions}, nil
}
