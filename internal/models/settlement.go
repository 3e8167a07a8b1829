package models

import "github.com/shopspring/decimal"

// Settlement is the computed outcome of a trade before anything is
// persisted: the new wallet balance, the new holding quantity, and the
// amount of money that changes hands. Keeping this as plain arithmetic
// means the trade engine only has to apply it inside a transaction.
type Settlement struct {
	Side          TradeSide
	Quantity      int
	Amount        decimal.Decimal // total cost (BUY) or proceeds (SELL)
	NewBalance    decimal.Decimal
	NewQuantity   int
	RemoveHolding bool // SELL brought the holding to exactly zero
}

// PlanBuy computes the settlement for buying quantity scrips at price with
// the given wallet balance and currently held quantity. No mutation occurs;
// on failure the returned error reports the current and required balance.
func PlanBuy(balance, price decimal.Decimal, held, quantity int) (Settlement, error) {
	if quantity < 1 {
		return Settlement{}, &InvalidQuantityError{Quantity: quantity}
	}

	totalCost := price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

	if balance.LessThan(totalCost) {
		return Settlement{}, &InsufficientFundsError{
			CurrentBalance:  balance,
			RequiredBalance: totalCost,
		}
	}

	return Settlement{
		Side:        SideBuy,
		Quantity:    quantity,
		Amount:      totalCost,
		NewBalance:  balance.Sub(totalCost).Round(2),
		NewQuantity: held + quantity,
	}, nil
}

// PlanSell computes the settlement for selling quantity scrips at price
// out of a holding of held scrips. A sell that empties the holding marks
// it for deletion rather than leaving a zero row behind.
func PlanSell(balance, price decimal.Decimal, held, quantity int) (Settlement, error) {
	if quantity < 1 {
		return Settlement{}, &InvalidQuantityError{Quantity: quantity}
	}

	if held < quantity {
		return Settlement{}, &InsufficientSharesError{
			CurrentScripBalance:  held,
			RequiredScripBalance: quantity,
		}
	}

	totalProceeds := price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	remaining := held - quantity

	return Settlement{
		Side:          SideSell,
		Quantity:      quantity,
		Amount:        totalProceeds,
		NewBalance:    balance.Add(totalProceeds).Round(2),
		NewQuantity:   remaining,
		RemoveHolding: remaining == 0,
	}, nil
}
