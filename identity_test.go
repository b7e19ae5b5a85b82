package ledgerport

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestIdentityMapperRegisterResolve(t *testing.T) {
	m := NewIdentityMapper()

	if err := m.Register(KindUser, "u-1", "1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	got, err := m.Resolve(KindUser, "u-1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "1" {
		t.Errorf("Resolve() = %q, want %q", got, "1")
	}
	if !m.Has(KindUser, "u-1") {
		t.Error("Has() = false, want true")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestIdentityMapperKindsAreScoped(t *testing.T) {
	m := NewIdentityMapper()
	if err := m.Register(KindUser, "id-1", "1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	// The same source id under another kind is a distinct key.
	if err := m.Register(KindAccount, "id-1", "7"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got, _ := m.Resolve(KindAccount, "id-1"); got != "7" {
		t.Errorf("Resolve(account) = %q, want %q", got, "7")
	}
}

func TestIdentityMapperDuplicate(t *testing.T) {
	m := NewIdentityMapper()
	if err := m.Register(KindUser, "u-1", "1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	err := m.Register(KindUser, "u-1", "2")
	var dup *DuplicateMappingError
	if !errors.As(err, &dup) {
		t.Fatalf("Register() error = %v, want DuplicateMappingError", err)
	}
	// The original mapping survives.
	if got, _ := m.Resolve(KindUser, "u-1"); got != "1" {
		t.Errorf("Resolve() = %q, want %q", got, "1")
	}
}

func TestIdentityMapperMissing(t *testing.T) {
	m := NewIdentityMapper()
	_, err := m.Resolve(KindAccount, "a-404")
	var missing *MissingMappingError
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve() error = %v, want MissingMappingError", err)
	}
	if missing.Kind != KindAccount || missing.SourceID != "a-404" {
		t.Errorf("MissingMappingError = %+v", missing)
	}
}

func TestIdentityMapperConcurrentRegister(t *testing.T) {
	m := NewIdentityMapper()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("u-%d", i)
			if err := m.Register(KindUser, id, id); err != nil {
				t.Errorf("Register(%s) error = %v", id, err)
			}
		}()
	}
	wg.Wait()

	if m.Len() != n {
		t.Errorf("Len() = %d, want %d", m.Len(), n)
	}
}
