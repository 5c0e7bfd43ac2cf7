// ABOUTME: Tests for activation data models
// ABOUTME: Validates status ordering, budget spend and quantity helpers
package models

import (
	"testing"
)

func TestVenueStatusNextFollowsPipelineOrder(t *testing.T) {
	for i, status := range VenueStatuses[:len(VenueStatuses)-1] {
		next, ok := status.Next()
		if !ok {
			t.Fatalf("expected %s to advance", status)
		}
		if next != VenueStatuses[i+1] {
			t.Errorf("expected %s after %s, got %s", VenueStatuses[i+1], status, next)
		}
	}
}

func TestVenueStatusNextAtBookedIsNoop(t *testing.T) {
	next, ok := VenueBooked.Next()
	if ok {
		t.Error("booked should be terminal")
	}
	if next != VenueBooked {
		t.Errorf("expected booked, got %s", next)
	}
}

func TestProductStatusNextSkipsReconciled(t *testing.T) {
	next, ok := ProductInUse.Next()
	if ok || next != ProductInUse {
		t.Errorf("in_use must not advance by itself, got %s (ok=%v)", next, ok)
	}
	if _, ok := ProductReconciled.Next(); ok {
		t.Error("reconciled should be terminal")
	}
	if !ProductDelivered.CanReconcile() || !ProductInUse.CanReconcile() {
		t.Error("delivered and in_use should allow reconcile")
	}
	if ProductShipped.CanReconcile() {
		t.Error("shipped should not allow reconcile")
	}
}

func TestBudgetStatusTransitions(t *testing.T) {
	allowed := map[BudgetStatus][]BudgetStatus{
		BudgetEstimated:       {BudgetPendingApproval},
		BudgetPendingApproval: {BudgetApproved, BudgetRejected},
		BudgetApproved:        {BudgetPaid},
		BudgetRejected:        {},
		BudgetPaid:            {},
	}
	all := []BudgetStatus{BudgetEstimated, BudgetPendingApproval, BudgetApproved, BudgetRejected, BudgetPaid}

	for from, targets := range allowed {
		for _, to := range all {
			want := false
			for _, target := range targets {
				if target == to {
					want = true
				}
			}
			if got := from.CanTransition(to); got != want {
				t.Errorf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestPaidOnlyReachableFromApproved(t *testing.T) {
	for _, from := range []BudgetStatus{BudgetEstimated, BudgetPendingApproval, BudgetRejected, BudgetPaid} {
		if from.CanTransition(BudgetPaid) {
			t.Errorf("%s should not reach paid", from)
		}
	}
}

func TestClockStatusApply(t *testing.T) {
	tests := []struct {
		from   ClockStatus
		action ClockAction
		want   ClockStatus
		ok     bool
	}{
		{ClockNotStarted, ActionClockIn, ClockedIn, true},
		{ClockedIn, ActionStartBreak, ClockOnBreak, true},
		{ClockOnBreak, ActionEndBreak, ClockedIn, true},
		{ClockedIn, ActionClockOut, ClockedOut, true},
		{ClockOnBreak, ActionClockOut, ClockOnBreak, false},
		{ClockNotStarted, ActionClockOut, ClockNotStarted, false},
		{ClockedOut, ActionClockIn, ClockedOut, false},
	}

	for _, tt := range tests {
		got, ok := tt.from.Apply(tt.action)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s + %s: expected (%s, %v), got (%s, %v)", tt.from, tt.action, tt.want, tt.ok, got, ok)
		}
	}
}

func TestPhaseNext(t *testing.T) {
	phase := PhasePlanning
	steps := 0
	for {
		next, ok := phase.Next()
		if !ok {
			break
		}
		phase = next
		steps++
	}
	if phase != PhaseWrapped || steps != 4 {
		t.Errorf("expected wrapped after 4 steps, got %s after %d", phase, steps)
	}
}

func TestBudgetItemSpend(t *testing.T) {
	item := BudgetItem{EstimatedAmount: 1000}
	if item.Spend() != 1000 {
		t.Errorf("expected estimate as spend, got %d", item.Spend())
	}

	actual := int64(750)
	item.ActualAmount = &actual
	if item.Spend() != 750 {
		t.Errorf("expected actual as spend, got %d", item.Spend())
	}
}

func TestProductUnaccounted(t *testing.T) {
	p := Product{QuantityDelivered: 120, QuantityUsed: 100, QuantityReturned: 10, QuantityDamaged: 5}
	if p.Unaccounted() != 5 {
		t.Errorf("expected 5 unaccounted, got %d", p.Unaccounted())
	}
}

func TestBudgetCategoriesAreEleven(t *testing.T) {
	if len(BudgetCategories) != 11 {
		t.Errorf("expected 11 budget categories, got %d", len(BudgetCategories))
	}
	if !CategorySignage.Valid() || BudgetCategory("travel").Valid() {
		t.Error("category validation mismatch")
	}
}
