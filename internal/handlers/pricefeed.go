package handlers

import (
	"database/sql"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aavashbaral/stock-market-tracker/internal/db"
	"github.com/aavashbaral/stock-market-tracker/internal/models"
)

// PriceFeed periodically reprices a random scrip and broadcasts the update.
// This is a stand-in for a real market-data feed: prices are uniform random
// in [10.00, 200.00], rounded to 2 decimals.
type PriceFeed struct {
	interval time.Duration
	hub      *PriceHub
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewPriceFeed creates a feed ticking at the given interval
func NewPriceFeed(interval time.Duration, hub *PriceHub) *PriceFeed {
	return &PriceFeed{
		interval: interval,
		hub:      hub,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the repricing loop
func (pf *PriceFeed) Start() {
	pf.wg.Add(1)
	go pf.loop()
	log.Printf("✅ Price feed started (interval %s)", pf.interval)
}

// Stop stops the repricing loop
func (pf *PriceFeed) Stop() {
	close(pf.stopCh)
	pf.wg.Wait()
	log.Println("Price feed stopped")
}

func (pf *PriceFeed) loop() {
	defer pf.wg.Done()

	ticker := time.NewTicker(pf.interval)
	defer ticker.Stop()

	for {
		select {
		case <-pf.stopCh:
			return

		case <-ticker.C:
			var scrip string
			err := db.DB.QueryRow(
				"SELECT stock_scrip FROM shares ORDER BY random() LIMIT 1",
			).Scan(&scrip)
			if err == sql.ErrNoRows {
				continue // nothing to reprice yet
			}
			if err != nil {
				log.Println("Price feed query error:", err)
				continue
			}

			update, err := RefreshPrice(scrip)
			if err != nil {
				log.Println("Price feed update error:", err)
				continue
			}

			if pf.hub != nil {
				pf.hub.Broadcast(update)
			}
		}
	}
}

// RefreshPrice replaces the scrip's current price with a fresh random value
// and returns the update that was persisted.
func RefreshPrice(scrip string) (models.PriceUpdate, error) {
	var update models.PriceUpdate
	err := db.DB.QueryRow(`
        UPDATE shares
        SET current_price = $1, last_updated = NOW()
        WHERE stock_scrip = $2
        RETURNING stock_scrip, current_price, last_updated
    `, RandomPrice(), scrip).Scan(
		&update.StockScrip, &update.CurrentPrice, &update.LastUpdated,
	)
	if err != nil {
		return models.PriceUpdate{}, err
	}
	return update, nil
}

// RandomPrice picks a demo price in [10.00, 200.00] with 2-decimal steps.
func RandomPrice() decimal.Decimal {
	cents := rand.Intn(19001) + 1000 // 1000..20000
	return decimal.NewFromInt(int64(cents)).Div(decimal.NewFromInt(100))
}
