package ledgerport

import "sync"

// IdentityMapper is the write-once registry translating source-store ids to
// target-store ids, scoped per entity kind. It is owned by a single
// orchestrator run and passed to every migrator; it is safe for concurrent
// registration by stage workers.
//
// Mappings are append-only: there is no deletion, and registering the same
// (kind, source id) twice is a contract violation.
type IdentityMapper struct {
	mu     sync.RWMutex
	byKind map[EntityKind]map[string]string
}

// NewIdentityMapper creates an empty mapper.
func NewIdentityMapper() *IdentityMapper {
	return &IdentityMapper{byKind: make(map[EntityKind]map[string]string)}
}

// Register records the translation sourceID -> targetID for the given kind.
// It returns a DuplicateMappingError if sourceID is already registered.
func (m *IdentityMapper) Register(kind EntityKind, sourceID, targetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, ok := m.byKind[kind]
	if !ok {
		ids = make(map[string]string)
		m.byKind[kind] = ids
	}
	if _, dup := ids[sourceID]; dup {
		return &DuplicateMappingError{Kind: kind, SourceID: sourceID}
	}
	ids[sourceID] = targetID
	return nil
}

// Resolve returns the target id registered for (kind, sourceID). A lookup
// for an unmapped key is an explicit MissingMappingError, never a silent
// default.
func (m *IdentityMapper) Resolve(kind EntityKind, sourceID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	targetID, ok := m.byKind[kind][sourceID]
	if !ok {
		return "", &MissingMappingError{Kind: kind, SourceID: sourceID}
	}
	return targetID, nil
}

// Has reports whether (kind, sourceID) is already registered.
func (m *IdentityMapper) Has(kind EntityKind, sourceID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byKind[kind][sourceID]
	return ok
}

// Len returns the total number of registered mappings across all kinds.
func (m *IdentityMapper) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, ids := range m.byKind {
		n += len(ids)
	}
	return n
}
