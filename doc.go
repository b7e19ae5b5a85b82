// Package ledgerport moves a banking ledger (users, multi-currency accounts,
// transfers) from a document-oriented source store into a relational-style
// target store, preserving every cross-entity reference, deriving
// account-level transfer aggregates absent from the source schema, and
// proving the result with a reconciliation pass.
//
// The core functionalities include:
//   - Identity Mapping: a write-once registry translating source-store ids
//     to target-store ids, scoped per entity kind.
//   - Entity Migration: users, then accounts, then transactions, in
//     barrier-synchronized stages; per-record failures are tolerated and
//     reported, infrastructure failures abort the run.
//   - Aggregate Recomputation: daily and monthly outgoing-transfer totals
//     derived from the migrated transaction history.
//   - Limit Invariants: pure validators guarding daily/monthly transfer
//     caps, shared by live account handling and migration.
//   - Consistency Audit: an independent read of both stores producing
//     per-entity coverage reports and advisory balance findings.
//
// This package serves as the foundational logic for the `lpt` command-line
// tool; re-running a migration against an already-populated target is safe
// because mapped records are skipped, never duplicated.
package ledgerport
