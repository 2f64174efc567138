package decimal

import (
	"testing"
)

func TestConstructors(t *testing.T) {
	q := NewQuantity(1234.56)
	if q.String() != "1235" {
		t.Fatalf("NewQuantity display mismatch: got %s", q.String())
	}
}

func TestScales(t *testing.T) {
	q := NewQuantity(141175)
	if got := q.HundredMillions().StringFixed(2); got != "1.41" {
		t.Fatalf("HundredMillions got %s", got)
	}
	if got := q.TenThousands().StringFixed(0); got != "14118" {
		t.Fatalf("TenThousands got %s", got)
	}
	if !q.AtLeastHundredMillion() || !q.AtLeastTenThousand() {
		t.Fatalf("threshold checks failed for %s", q)
	}
	if NewQuantity(99.9).AtLeastTenThousand() {
		t.Fatalf("99.9 thousand is below ten thousand")
	}
	if !NewQuantity(100).AtLeastTenThousand() || NewQuantity(99999.9).AtLeastHundredMillion() {
		t.Fatalf("threshold boundaries misplaced")
	}
}
