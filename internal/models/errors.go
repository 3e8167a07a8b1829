package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Trade failures carry the numbers the client needs (current balance,
// required amount, held quantity), so they are small structs rather than
// bare sentinel values.

// ErrUserNotFound is returned when a trade or wallet operation names a
// user that does not exist.
var ErrUserNotFound = errors.New("user not found")

// UnknownScripError - the requested symbol is not a tradable scrip.
type UnknownScripError struct {
	Scrip string
}

func (e *UnknownScripError) Error() string {
	return fmt.Sprintf("%s is not a valid stock symbol", e.Scrip)
}

// InsufficientFundsError - wallet balance does not cover the buy.
type InsufficientFundsError struct {
	CurrentBalance  decimal.Decimal
	RequiredBalance decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough balance: have %s, need %s",
		e.CurrentBalance, e.RequiredBalance)
}

// InsufficientSharesError - user holds fewer scrips than they want to sell.
type InsufficientSharesError struct {
	CurrentScripBalance  int
	RequiredScripBalance int
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("not enough scrips: have %d, selling %d",
		e.CurrentScripBalance, e.RequiredScripBalance)
}

// NoHoldingError - user tried to sell a scrip they do not hold at all.
type NoHoldingError struct {
	Scrip string
}

func (e *NoHoldingError) Error() string {
	return fmt.Sprintf("no scrip(%s) in portfolio", e.Scrip)
}

// InvalidQuantityError - trade quantity below 1.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d: must be at least 1", e.Quantity)
}

// NegativeBalanceError guards the wallet invariant: a withdraw that would
// take the balance below zero is rejected before mutation.
type NegativeBalanceError struct {
	Balance decimal.Decimal
	Amount  decimal.Decimal
}

func (e *NegativeBalanceError) Error() string {
	return fmt.Sprintf("can't have balance less than 0: balance %s, withdraw %s",
		e.Balance, e.Amount)
}

// UnknownTradeSideError should never be reachable through the API (request
// binding restricts the side to BUY or SELL); it exists as a defensive
// fallback for internal callers.
type UnknownTradeSideError struct {
	Side string
}

func (e *UnknownTradeSideError) Error() string {
	return fmt.Sprintf("unknown trade side %q", e.Side)
}
