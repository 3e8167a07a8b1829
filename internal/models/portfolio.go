package models

import "github.com/shopspring/decimal"

// HoldingPosition is one priced portfolio row used for aggregation.
type HoldingPosition struct {
	StockScrip   string          `json:"stock_scrip"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Quantity     int             `json:"number_of_shares"`
	TotalHolding decimal.Decimal `json:"total_holding"`
}

// PortfolioSummary is the aggregated view of a user's portfolio.
type PortfolioSummary struct {
	Holdings    []HoldingPosition `json:"holdings"`
	TotalShares int               `json:"total_shares"`
	TotalValue  decimal.Decimal   `json:"total_value"`
}

// AggregatePortfolio fills in per-row total_holding and computes the
// portfolio totals. Monetary totals are rounded to 2 decimals at the point
// of aggregation. An empty portfolio yields an empty (non-nil) holdings
// list and zero totals.
func AggregatePortfolio(positions []HoldingPosition) PortfolioSummary {
	summary := PortfolioSummary{
		Holdings:   make([]HoldingPosition, 0, len(positions)),
		TotalValue: decimal.Zero,
	}

	totalValue := decimal.Zero
	for _, p := range positions {
		value := p.CurrentPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
		p.TotalHolding = value.Round(2)

		summary.Holdings = append(summary.Holdings, p)
		summary.TotalShares += p.Quantity
		totalValue = totalValue.Add(value)
	}

	summary.TotalValue = totalValue.Round(2)
	return summary
}
