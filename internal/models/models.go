package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// API payloads carry money as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// TradeSide is the direction of a trade.
type TradeSide string

const (
	SideBuy  TradeSide = "BUY"
	SideSell TradeSide = "SELL"
)

// User represents a user in the system
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Share represents a tradable stock scrip and its latest price
type Share struct {
	ID           int             `json:"-"`
	StockScrip   string          `json:"stock_scrip"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// Wallet keeps track of money in a user's wallet
type Wallet struct {
	UserID  int             `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// Deposit adds amount to the wallet and returns the new balance.
func (w *Wallet) Deposit(amount decimal.Decimal) decimal.Decimal {
	w.Balance = w.Balance.Add(amount).Round(2)
	return w.Balance
}

// Withdraw removes amount from the wallet. The balance is never allowed
// to go below zero.
func (w *Wallet) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	final := w.Balance.Sub(amount).Round(2)
	if final.IsNegative() {
		return w.Balance, &NegativeBalanceError{Balance: w.Balance, Amount: amount}
	}
	w.Balance = final
	return w.Balance, nil
}

// Holding is one row of a user's portfolio: how many of a scrip they own
type Holding struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	ShareID    int    `json:"-"`
	StockScrip string `json:"stock_scrip"`
	Quantity   int    `json:"number_of_shares"`
}

// TradeRecord is one entry in the trade ledger
type TradeRecord struct {
	ID         string          `json:"id"`
	UserID     int             `json:"user_id"`
	StockScrip string          `json:"stock_scrip"`
	TradeType  TradeSide       `json:"trade_type"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"total_amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PriceUpdate is pushed to websocket subscribers whenever a scrip is repriced
type PriceUpdate struct {
	StockScrip   string          `json:"stock_scrip"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// TradeRequest - what the client sends to buy or sell a scrip
type TradeRequest struct {
	UserID          int    `json:"user_id" binding:"required"`
	TransactionType string `json:"transaction_type" binding:"required,oneof=BUY SELL"`
	Scrip           string `json:"scrip" binding:"required,max=16"`
	ScripCount      int    `json:"scrip_count" binding:"required,min=1"`
}

// TradeResult is what the trade engine reports back per trade. Err is nil
// on success and one of the typed failures in errors.go otherwise.
type TradeResult struct {
	Detail              string          `json:"detail"`
	CurrentBalance      decimal.Decimal `json:"current_balance"`
	CurrentScripBalance int             `json:"current_scrip_balance"`
	TransactionAmount   decimal.Decimal `json:"transaction_amount"`
	Err                 error           `json:"-"`
}

// DepositRequest - what the client sends to add money to a wallet
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateScripRequest registers a new tradable scrip
type CreateScripRequest struct {
	StockScrip   string          `json:"stock_scrip" binding:"required,max=16"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}
