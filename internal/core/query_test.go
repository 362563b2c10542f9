package core

import "testing"

func samplePayments() []Payment {
	return []Payment{
		{ID: "1", ProfileID: "a", Amount: 100, Category: CategoryInsurance, Date: NewDate(2024, 3, 15), IsPaid: true},
		{ID: "2", ProfileID: "b", Amount: 50, Category: CategoryTaxes, Date: NewDate(2024, 3, 20), IsPaid: false},
		{ID: "3", ProfileID: "a", Amount: 25, Category: CategoryTaxes, Date: NewDate(2024, 4, 2), IsPaid: false},
	}
}

func TestByProfile(t *testing.T) {
	got := ByProfile(samplePayments(), "a")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if n := len(ByProfile(samplePayments(), "missing")); n != 0 {
		t.Fatalf("expected empty, got %d", n)
	}
}

func TestByCategory(t *testing.T) {
	got := ByCategory(samplePayments(), CategoryTaxes, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 taxes payments, got %d", len(got))
	}
	got = ByCategory(samplePayments(), CategoryTaxes, "a")
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("unexpected profile-restricted result: %+v", got)
	}
}

func TestByStatus(t *testing.T) {
	paid := ByStatus(samplePayments(), true, "")
	if len(paid) != 1 || paid[0].ID != "1" {
		t.Fatalf("unexpected paid set: %+v", paid)
	}
	due := ByStatus(samplePayments(), false, "b")
	if len(due) != 1 || due[0].ID != "2" {
		t.Fatalf("unexpected due set: %+v", due)
	}
}

func TestByMonth(t *testing.T) {
	list := []Payment{
		{ID: "1", ProfileID: "a", Amount: 10, Category: CategoryOther, Date: NewDate(2024, 3, 15)},
	}
	if got := ByMonth(list, NewDate(2024, 3, 1), ""); len(got) != 1 {
		t.Fatalf("expected match for same month")
	}
	if got := ByMonth(list, NewDate(2024, 4, 1), ""); len(got) != 0 {
		t.Fatalf("expected no match for next month")
	}
	// Same month of a different year must not match.
	if got := ByMonth(list, NewDate(2023, 3, 1), ""); len(got) != 0 {
		t.Fatalf("expected no match for previous year")
	}
}

func TestTotals(t *testing.T) {
	list := []Payment{
		{ProfileID: "a", IsPaid: true, Amount: 100, Category: CategoryOther, Date: NewDate(2024, 1, 1)},
		{ProfileID: "b", IsPaid: false, Amount: 50, Category: CategoryOther, Date: NewDate(2024, 1, 1)},
	}
	if got := TotalPaid(list); got != 100 {
		t.Fatalf("TotalPaid = %v, want 100", got)
	}
	if got := TotalDue(list); got != 50 {
		t.Fatalf("TotalDue = %v, want 50", got)
	}
	if got := TotalPaid(nil); got != 0 {
		t.Fatalf("TotalPaid(nil) = %v, want 0", got)
	}
}
