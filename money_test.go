package ledgerport

import "testing"

func TestMoneyString(t *testing.T) {
	tests := []struct {
		money Money
		want  string
	}{
		{M(1000, USD), "$1,000.00"},
		{M(1000.5, USD), "$1,000.50"},
		{M(1000, EUR), "€1,000.00"},
		{M(d("99.99"), USD), "$99.99"},
	}
	for _, tc := range tests {
		if got := tc.money.String(); got != tc.want {
			t.Errorf("M(%s %s).String() = %q, want %q", tc.money.Amount(), tc.money.Currency(), got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := M(100, USD)
	b := M(40, USD)

	if got := a.Sub(b); !got.Equal(M(60, USD)) {
		t.Errorf("Sub() = %s, want $60.00", got)
	}
	if got := a.Add(b.Neg()); !got.Equal(M(60, USD)) {
		t.Errorf("Add(Neg()) = %s, want $60.00", got)
	}
	if !b.LessThan(a) || a.LessThan(b) {
		t.Error("LessThan() disagrees with the amounts")
	}

	// The zero Money has no currency and adopts the other operand's.
	var zero Money
	if got := zero.Add(a); got.Currency() != USD {
		t.Errorf("zero.Add(a).Currency() = %q, want USD", got.Currency())
	}
}

func TestMoneySignedString(t *testing.T) {
	if got := M(0, USD).SignedString(); got != "-" {
		t.Errorf("SignedString(0) = %q, want %q", got, "-")
	}
	if got := M(5, USD).SignedString(); got != "+$5.00" {
		t.Errorf("SignedString(5) = %q, want %q", got, "+$5.00")
	}
}
