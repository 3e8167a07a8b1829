package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestPlanBuy_Success(t *testing.T) {
	// price=100.00, balance=500.00, BUY 3 → balance=200.00, holding=3, amount=300.00
	plan, err := PlanBuy(dec(t, "500.00"), dec(t, "100.00"), 0, 3)
	if err != nil {
		t.Fatalf("Expected buy to succeed, got: %v", err)
	}

	if !plan.Amount.Equal(dec(t, "300.00")) {
		t.Errorf("Expected amount 300.00, got %s", plan.Amount)
	}
	if !plan.NewBalance.Equal(dec(t, "200.00")) {
		t.Errorf("Expected new balance 200.00, got %s", plan.NewBalance)
	}
	if plan.NewQuantity != 3 {
		t.Errorf("Expected new quantity 3, got %d", plan.NewQuantity)
	}
	if plan.RemoveHolding {
		t.Error("Buy must never mark the holding for removal")
	}
}

func TestPlanBuy_IncrementsExistingHolding(t *testing.T) {
	plan, err := PlanBuy(dec(t, "1000.00"), dec(t, "50.00"), 7, 4)
	if err != nil {
		t.Fatalf("Expected buy to succeed, got: %v", err)
	}

	if plan.NewQuantity != 11 {
		t.Errorf("Expected new quantity 11, got %d", plan.NewQuantity)
	}
	if !plan.NewBalance.Equal(dec(t, "800.00")) {
		t.Errorf("Expected new balance 800.00, got %s", plan.NewBalance)
	}
}

func TestPlanBuy_InsufficientFunds(t *testing.T) {
	// balance=50.00, price=100.00, BUY 1 → rejected, balance untouched
	_, err := PlanBuy(dec(t, "50.00"), dec(t, "100.00"), 0, 1)

	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientFundsError, got: %v", err)
	}
	if !insufficient.CurrentBalance.Equal(dec(t, "50.00")) {
		t.Errorf("Expected reported balance 50.00, got %s", insufficient.CurrentBalance)
	}
	if !insufficient.RequiredBalance.Equal(dec(t, "100.00")) {
		t.Errorf("Expected required balance 100.00, got %s", insufficient.RequiredBalance)
	}
}

func TestPlanBuy_ExactBalance(t *testing.T) {
	plan, err := PlanBuy(dec(t, "300.00"), dec(t, "100.00"), 0, 3)
	if err != nil {
		t.Fatalf("Buying with exactly enough balance must succeed, got: %v", err)
	}
	if !plan.NewBalance.IsZero() {
		t.Errorf("Expected balance 0, got %s", plan.NewBalance)
	}
}

func TestPlanBuy_InvalidQuantity(t *testing.T) {
	for _, qty := range []int{0, -3} {
		_, err := PlanBuy(dec(t, "500.00"), dec(t, "100.00"), 0, qty)

		var invalid *InvalidQuantityError
		if !errors.As(err, &invalid) {
			t.Errorf("Quantity %d: expected InvalidQuantityError, got: %v", qty, err)
		}
	}
}

func TestPlanBuy_RoundsAmount(t *testing.T) {
	plan, err := PlanBuy(dec(t, "100.00"), dec(t, "33.33"), 0, 3)
	if err != nil {
		t.Fatalf("Expected buy to succeed, got: %v", err)
	}
	if !plan.Amount.Equal(dec(t, "99.99")) {
		t.Errorf("Expected amount 99.99, got %s", plan.Amount)
	}
	if !plan.NewBalance.Equal(dec(t, "0.01")) {
		t.Errorf("Expected new balance 0.01, got %s", plan.NewBalance)
	}
}

func TestPlanSell_AllSharesRemovesHolding(t *testing.T) {
	// holding=5, SELL 5 → holding deleted, balance credited by 5×price
	plan, err := PlanSell(dec(t, "0.00"), dec(t, "100.00"), 5, 5)
	if err != nil {
		t.Fatalf("Expected sell to succeed, got: %v", err)
	}

	if !plan.RemoveHolding {
		t.Error("Selling the whole holding must mark it for removal")
	}
	if plan.NewQuantity != 0 {
		t.Errorf("Expected new quantity 0, got %d", plan.NewQuantity)
	}
	if !plan.NewBalance.Equal(dec(t, "500.00")) {
		t.Errorf("Expected new balance 500.00, got %s", plan.NewBalance)
	}
	if !plan.Amount.Equal(dec(t, "500.00")) {
		t.Errorf("Expected proceeds 500.00, got %s", plan.Amount)
	}
}

func TestPlanSell_Partial(t *testing.T) {
	plan, err := PlanSell(dec(t, "20.00"), dec(t, "10.00"), 5, 2)
	if err != nil {
		t.Fatalf("Expected sell to succeed, got: %v", err)
	}

	if plan.RemoveHolding {
		t.Error("Partial sell must not remove the holding")
	}
	if plan.NewQuantity != 3 {
		t.Errorf("Expected 3 shares remaining, got %d", plan.NewQuantity)
	}
	if !plan.NewBalance.Equal(dec(t, "40.00")) {
		t.Errorf("Expected new balance 40.00, got %s", plan.NewBalance)
	}
}

func TestPlanSell_InsufficientShares(t *testing.T) {
	// holding=2, SELL 5 → rejected, holding unchanged
	_, err := PlanSell(dec(t, "0.00"), dec(t, "100.00"), 2, 5)

	var insufficient *InsufficientSharesError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientSharesError, got: %v", err)
	}
	if insufficient.CurrentScripBalance != 2 {
		t.Errorf("Expected held quantity 2, got %d", insufficient.CurrentScripBalance)
	}
	if insufficient.RequiredScripBalance != 5 {
		t.Errorf("Expected requested quantity 5, got %d", insufficient.RequiredScripBalance)
	}
}

func TestPlanSell_InvalidQuantity(t *testing.T) {
	_, err := PlanSell(dec(t, "0.00"), dec(t, "100.00"), 5, 0)

	var invalid *InvalidQuantityError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidQuantityError, got: %v", err)
	}
}
