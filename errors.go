package ledgerport

import "fmt"

// ValidationError reports a caller-input violation of an account creation,
// update or limit rule. It names the first violated field; it is reported
// synchronously and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MissingReferenceError reports a reference (account to user, transaction to
// account) that could not be resolved at migration time. It fails the single
// offending record, never the run.
type MissingReferenceError struct {
	Kind     EntityKind // kind of the referenced entity
	SourceID string     // source id of the unresolved reference
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("unresolved %s reference: source id %q has no mapping", e.Kind, e.SourceID)
}

// MissingMappingError reports a lookup for an unmapped identity. Outside a
// reference resolution it indicates a barrier violation and is fatal.
type MissingMappingError struct {
	Kind     EntityKind
	SourceID string
}

func (e *MissingMappingError) Error() string {
	return fmt.Sprintf("no identity mapping for %s %q", e.Kind, e.SourceID)
}

// DuplicateMappingError reports an attempt to register a source id twice for
// the same entity kind. It guards idempotency and is fatal.
type DuplicateMappingError struct {
	Kind     EntityKind
	SourceID string
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("identity mapping for %s %q already registered", e.Kind, e.SourceID)
}

// StoreIOError reports that the source or target store is unreachable or
// rejected an operation. It aborts the current run; mappings registered so
// far remain valid for a resumed run.
type StoreIOError struct {
	Op  string // the store operation that failed, e.g. "list accounts"
	Err error
}

func (e *StoreIOError) Error() string {
	return fmt.Sprintf("store i/o failure during %s: %v", e.Op, e.Err)
}

func (e *StoreIOError) Unwrap() error { return e.Err }
