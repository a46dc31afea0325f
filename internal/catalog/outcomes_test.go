package catalog

import "testing"

func TestCatalogHasAllOutcomes(t *testing.T) {
	if got := Count(); got != 38 {
		t.Fatalf("expected 38 outcomes, got %d", got)
	}
}

func TestZeroAndDoubleZeroAreDistinct(t *testing.T) {
	zero, ok := Find("0")
	if !ok {
		t.Fatal("outcome 0 not found")
	}
	doubleZero, ok := Find("00")
	if !ok {
		t.Fatal("outcome 00 not found")
	}

	if zero.Name != "DELFÍN" {
		t.Errorf("outcome 0: expected DELFÍN, got %s", zero.Name)
	}
	if doubleZero.Name != "BALLENA" {
		t.Errorf("outcome 00: expected BALLENA, got %s", doubleZero.Name)
	}
	if zero == doubleZero {
		t.Error("0 and 00 must be distinct outcomes")
	}
}

func TestFindRejectsUnknownCodes(t *testing.T) {
	for _, code := range []string{"", "37", "-1", "000", "PERICO"} {
		if _, ok := Find(code); ok {
			t.Errorf("Find(%q) should not match", code)
		}
	}
}

func TestOutcomesReturnsACopy(t *testing.T) {
	first := Outcomes()
	first[0].Name = "mutated"

	if fresh := Outcomes(); fresh[0].Name != "DELFÍN" {
		t.Error("Outcomes must not expose the internal table")
	}
}
