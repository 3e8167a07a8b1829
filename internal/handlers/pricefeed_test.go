package handlers

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aavashbaral/stock-market-tracker/internal/db"
)

func TestRandomPrice_Range(t *testing.T) {
	low := decimal.NewFromInt(10)
	high := decimal.NewFromInt(200)

	for i := 0; i < 1000; i++ {
		price := RandomPrice()

		if price.LessThan(low) || price.GreaterThan(high) {
			t.Fatalf("Price %s out of range [10.00, 200.00]", price)
		}
		if !price.Equal(price.Round(2)) {
			t.Fatalf("Price %s has more than 2 decimal places", price)
		}
	}
}

func TestRefreshPrice_UpdatesStore(t *testing.T) {
	// DB-backed check that RefreshPrice persists what it returns.
	database := db.SetupTestDB(t)
	defer database.Close()
	defer db.CleanupTestDB(t, database)

	db.CreateTestShare(t, database, "FEEDTEST", "50.00")

	update, err := RefreshPrice("FEEDTEST")
	if err != nil {
		t.Fatalf("Expected refresh to succeed, got: %v", err)
	}
	if update.StockScrip != "FEEDTEST" {
		t.Errorf("Expected scrip FEEDTEST, got %s", update.StockScrip)
	}

	var stored decimal.Decimal
	err = database.QueryRow(
		"SELECT current_price FROM shares WHERE stock_scrip = 'FEEDTEST'",
	).Scan(&stored)
	if err != nil {
		t.Fatalf("Failed to query share: %v", err)
	}
	if !stored.Equal(update.CurrentPrice) {
		t.Errorf("Stored price %s does not match broadcast price %s", stored, update.CurrentPrice)
	}
}
