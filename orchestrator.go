package ledgerport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// RunState is the lifecycle state of one migration run.
type RunState int

const (
	// NotStarted is the state of a freshly created orchestrator.
	NotStarted RunState = iota
	// InProgress means stages are executing.
	InProgress
	// Completed means every record reached a terminal outcome; per-record
	// failures are tolerated and reported, not fatal.
	Completed
	// Aborted means an infrastructure-level failure or a cancellation
	// stopped the run before all records were processed. Identity mappings
	// registered so far remain valid for a resumed run.
	Aborted
)

func (s RunState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the state by name.
func (s RunState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Failure describes one record that could not be migrated.
type Failure struct {
	Kind     EntityKind `json:"entityType"`
	SourceID string     `json:"sourceId"`
	Reason   string     `json:"reason"`
}

// MigrationSummary aggregates per-record outcomes of one run. A completed
// run with a non-empty failure list means "some bad data"; an aborted run
// means the process itself broke.
type MigrationSummary struct {
	State                RunState  `json:"state"`
	UsersMigrated        int       `json:"usersMigrated"`
	UsersFailed          int       `json:"usersFailed"`
	AccountsMigrated     int       `json:"accountsMigrated"`
	AccountsFailed       int       `json:"accountsFailed"`
	TransactionsMigrated int       `json:"transactionsMigrated"`
	TransactionsFailed   int       `json:"transactionsFailed"`
	Failures             []Failure `json:"failures,omitempty"`
}

// Orchestrator drives one migration run: users, then accounts, then
// transactions, each stage a barrier, followed by aggregate recomputation.
// An orchestrator is single-use; create a new one for every run.
type Orchestrator struct {
	source SourceReader
	target TargetStore
	ids    *IdentityMapper

	// Workers bounds per-stage parallelism. Records within a stage are
	// independent, so any value >= 1 is correct.
	Workers int
	// At is the reference time for the aggregate day/month windows.
	At time.Time

	mu      sync.Mutex
	state   RunState
	summary MigrationSummary
}

// NewOrchestrator creates an orchestrator over the given stores with a
// fresh identity mapper.
func NewOrchestrator(source SourceReader, target TargetStore) *Orchestrator {
	return &Orchestrator{
		source:  source,
		target:  target,
		ids:     NewIdentityMapper(),
		Workers: 4,
		At:      time.Now(),
	}
}

// IdentityMapper exposes the mapper owned by this run.
func (o *Orchestrator) IdentityMapper() *IdentityMapper { return o.ids }

// State returns the current run state.
func (o *Orchestrator) State() RunState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Run executes the full pipeline and returns the migration summary. A
// summary is returned even when the run aborts, reflecting the records
// processed so far.
//
// Re-running against an already-populated target is safe: identity mappings
// are restored from the target store and mapped records are skipped,
// counted as already migrated.
func (o *Orchestrator) Run(ctx context.Context) (MigrationSummary, error) {
	o.mu.Lock()
	if o.state != NotStarted {
		state := o.state
		o.mu.Unlock()
		return MigrationSummary{}, fmt.Errorf("orchestrator is single-use, state is %s", state)
	}
	o.state = InProgress
	o.mu.Unlock()

	if err := o.RestoreIdentities(ctx); err != nil {
		return o.abort(err)
	}

	users, err := o.source.ListUsers(ctx)
	if err != nil {
		return o.abort(&StoreIOError{Op: "list source users", Err: err})
	}
	um := &userMigrator{ids: o.ids, target: o.target}
	if err := runStage(ctx, o, KindUser, users, func(u SourceUser) string { return u.ID }, um.migrate); err != nil {
		return o.abort(err)
	}

	accounts, err := o.source.ListAccounts(ctx)
	if err != nil {
		return o.abort(&StoreIOError{Op: "list source accounts", Err: err})
	}
	am := &accountMigrator{ids: o.ids, target: o.target}
	if err := runStage(ctx, o, KindAccount, accounts, func(a SourceAccount) string { return a.ID }, am.migrate); err != nil {
		return o.abort(err)
	}

	// The account barrier has passed: the target store now holds every
	// migrated account, including those from previous runs.
	numbers, err := o.accountNumbers(ctx)
	if err != nil {
		return o.abort(err)
	}
	transactions, err := o.source.ListTransactions(ctx)
	if err != nil {
		return o.abort(&StoreIOError{Op: "list source transactions", Err: err})
	}
	tm := &transactionMigrator{ids: o.ids, target: o.target, numbers: numbers}
	if err := runStage(ctx, o, KindTransaction, transactions, func(t SourceTransaction) string { return t.ID }, tm.migrate); err != nil {
		return o.abort(err)
	}

	if err := RecomputeAggregates(ctx, o.target, o.At); err != nil {
		return o.abort(err)
	}

	o.mu.Lock()
	o.state = Completed
	o.summary.State = Completed
	summary := o.summary
	o.mu.Unlock()
	return summary, nil
}

// RestoreIdentities rebuilds the identity mapper from a previously
// populated target store. Every target record carries its source id, so the
// target store is the single durable artifact a resumed run needs. It is a
// no-op when the mapper already holds mappings.
func (o *Orchestrator) RestoreIdentities(ctx context.Context) error {
	if o.ids.Len() > 0 {
		return nil
	}
	users, err := o.target.Users(ctx)
	if err != nil {
		return &StoreIOError{Op: "list target users", Err: err}
	}
	for _, u := range users {
		if u.SourceID == "" {
			continue
		}
		if err := o.ids.Register(KindUser, u.SourceID, u.ID); err != nil {
			return err
		}
	}
	accounts, err := o.target.Accounts(ctx)
	if err != nil {
		return &StoreIOError{Op: "list target accounts", Err: err}
	}
	for _, a := range accounts {
		if a.SourceID == "" {
			continue
		}
		if err := o.ids.Register(KindAccount, a.SourceID, a.ID); err != nil {
			return err
		}
	}
	transactions, err := o.target.Transactions(ctx)
	if err != nil {
		return &StoreIOError{Op: "list target transactions", Err: err}
	}
	for _, t := range transactions {
		if t.SourceID == "" {
			continue
		}
		if err := o.ids.Register(KindTransaction, t.SourceID, t.ID); err != nil {
			return err
		}
	}
	if n := o.ids.Len(); n > 0 {
		log.Printf("restored %d identity mappings from target store", n)
	}
	return nil
}

func (o *Orchestrator) accountNumbers(ctx context.Context) (map[string]string, error) {
	accounts, err := o.target.Accounts(ctx)
	if err != nil {
		return nil, &StoreIOError{Op: "list target accounts", Err: err}
	}
	numbers := make(map[string]string, len(accounts))
	for _, a := range accounts {
		numbers[a.ID] = a.Number
	}
	return numbers, nil
}

func (o *Orchestrator) abort(err error) (MigrationSummary, error) {
	o.mu.Lock()
	o.state = Aborted
	o.summary.State = Aborted
	summary := o.summary
	o.mu.Unlock()
	log.Printf("migration aborted: %v", err)
	return summary, fmt.Errorf("migration aborted: %w", err)
}

func (o *Orchestrator) countMigrated(kind EntityKind) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch kind {
	case KindUser:
		o.summary.UsersMigrated++
	case KindAccount:
		o.summary.AccountsMigrated++
	case KindTransaction:
		o.summary.TransactionsMigrated++
	}
}

func (o *Orchestrator) countFailed(kind EntityKind, sourceID string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch kind {
	case KindUser:
		o.summary.UsersFailed++
	case KindAccount:
		o.summary.AccountsFailed++
	case KindTransaction:
		o.summary.TransactionsFailed++
	}
	o.summary.Failures = append(o.summary.Failures, Failure{Kind: kind, SourceID: sourceID, Reason: err.Error()})
	log.Printf("%s %s: %v", kind, sourceID, err)
}

// isRecordFailure distinguishes tolerated per-record errors from structural
// errors that must stop the run.
func isRecordFailure(err error) bool {
	var refErr *MissingReferenceError
	var valErr *ValidationError
	return errors.As(err, &refErr) || errors.As(err, &valErr)
}

// runStage migrates every record of one entity kind through a pool of
// workers. It returns only when each dispatched record has reached a
// terminal outcome: the caller's return is the stage barrier. Records whose
// source id is already mapped are skipped and counted as migrated.
func runStage[S any](ctx context.Context, o *Orchestrator, kind EntityKind, records []S, sourceID func(S) string, migrate func(context.Context, S) (string, error)) error {
	workers := o.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan S)
	quit := make(chan struct{})
	var quitOnce sync.Once

	var mu sync.Mutex
	var fatal error
	setFatal := func(err error) {
		mu.Lock()
		if fatal == nil {
			fatal = err
		}
		mu.Unlock()
		quitOnce.Do(func() { close(quit) })
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for rec := range jobs {
				id := sourceID(rec)
				if o.ids.Has(kind, id) {
					o.countMigrated(kind) // already migrated in a previous run
					continue
				}
				_, err := migrate(ctx, rec)
				switch {
				case err == nil:
					o.countMigrated(kind)
				case isRecordFailure(err):
					o.countFailed(kind, id, err)
				default:
					setFatal(err)
					return
				}
			}
		}()
	}

dispatch:
	for _, rec := range records {
		select {
		case <-ctx.Done():
			break dispatch
		case <-quit:
			break dispatch
		case jobs <- rec:
		}
	}
	close(jobs)
	wg.Wait()

	mu.Lock()
	err := fatal
	mu.Unlock()
	if err != nil {
		return err
	}
	// Cancellation between records: in-flight records finished above.
	return ctx.Err()
}
