package types

import "testing"

func TestU256Cmp(t *testing.T) {
	a := U256FromUint64(10)
	b := U256FromUint64(20)
	if a.Cmp(b) != -1 {
		t.Fatalf("expected a<b")
	}
	if b.Cmp(a) != 1 {
		t.Fatalf("expected b>a")
	}
	if a.Cmp(a) != 0 {
		t.Fatalf("expected a==a")
	}
}

func TestU256AddSub(t *testing.T) {
	a := U256FromUint64(100)
	b := U256FromUint64(42)
	sum := a.Add(b)
	if sum.Cmp(U256FromUint64(142)) != 0 {
		t.Fatalf("100+42 = %s, want 142", sum)
	}
	diff := sum.Sub(b)
	if diff.Cmp(a) != 0 {
		t.Fatalf("142-42 = %s, want 100", diff)
	}
}

func TestU256MulDivRoundTrip(t *testing.T) {
	a := U256FromUint64(123456789)
	prod := a.MulUint64(1000)
	back := prod.DivUint64(1000)
	if back.Cmp(a) != 0 {
		t.Fatalf("mul/div round trip: got %s want %s", back, a)
	}
}

func TestU256BigRoundTrip(t *testing.T) {
	if MinTarget.ToBig().BitLen() != 224 {
		t.Fatalf("MinTarget bit length = %d, want 224", MinTarget.ToBig().BitLen())
	}
}

func TestHashAsU256Ordering(t *testing.T) {
	var low, high Hash
	high[0] = 0xff
	lowU, highU := HashAsU256(low), HashAsU256(high)
	if lowU.Cmp(highU) >= 0 {
		t.Fatalf("expected hash with leading 0xff to be numerically larger")
	}
}
