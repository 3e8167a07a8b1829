package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aavashbaral/stock-market-tracker/internal/db"
	"github.com/aavashbaral/stock-market-tracker/internal/models"
)

// tradeJob pairs a trade request with the channel its result goes back on
type tradeJob struct {
	request  models.TradeRequest
	resultCh chan models.TradeResult
}

// TradeProcessor executes trades through a worker pool. Each trade runs
// under the owner's lock and inside a single database transaction, so the
// wallet debit/credit and the portfolio change land together or not at all.
type TradeProcessor struct {
	workers      int
	tradeQueue   chan tradeJob
	stopCh       chan struct{}
	wg           sync.WaitGroup
	portfolioMgr *models.PortfolioManager
}

// NewTradeProcessor creates a new trade processor with a worker pool
func NewTradeProcessor(workers int) *TradeProcessor {
	return &TradeProcessor{
		workers:      workers,
		tradeQueue:   make(chan tradeJob, 100),
		stopCh:       make(chan struct{}),
		portfolioMgr: models.NewPortfolioManager(),
	}
}

// Start starts the worker pool
func (tp *TradeProcessor) Start() {
	for i := 0; i < tp.workers; i++ {
		tp.wg.Add(1)
		go tp.worker(i)
	}
	log.Printf("✅ Started %d trade workers", tp.workers)
}

// Stop gracefully stops all workers
func (tp *TradeProcessor) Stop() {
	close(tp.stopCh)
	tp.wg.Wait()
	log.Println("Trade processor stopped")
}

func (tp *TradeProcessor) worker(id int) {
	defer tp.wg.Done()

	for {
		select {
		case <-tp.stopCh:
			return

		case job := <-tp.tradeQueue:
			log.Printf("Worker %d processing %s for user %d: %s x%d",
				id, job.request.TransactionType, job.request.UserID,
				job.request.Scrip, job.request.ScripCount)

			job.resultCh <- tp.processTrade(job.request)
		}
	}
}

// SubmitTrade submits a trade to the processing queue and waits for the result
func (tp *TradeProcessor) SubmitTrade(req models.TradeRequest) models.TradeResult {
	resultCh := make(chan models.TradeResult)

	tp.tradeQueue <- tradeJob{
		request:  req,
		resultCh: resultCh,
	}

	return <-resultCh
}

// processTrade executes a single trade with per-user locking. All reads use
// FOR UPDATE inside one transaction; any failure rolls back with zero writes.
func (tp *TradeProcessor) processTrade(req models.TradeRequest) models.TradeResult {
	// Lock wallet and portfolio for THIS USER ONLY (not global!)
	tp.portfolioMgr.LockUser(req.UserID)
	defer tp.portfolioMgr.UnlockUser(req.UserID)

	if req.ScripCount < 1 {
		return failed(&models.InvalidQuantityError{Quantity: req.ScripCount})
	}

	tx, err := db.DB.Begin()
	if err != nil {
		return failed(fmt.Errorf("transaction failed: %w", err))
	}
	defer tx.Rollback() // Rollback if we don't commit

	// 1. Resolve the scrip and its current price
	var shareID int
	var price decimal.Decimal
	err = tx.QueryRow(
		"SELECT id, current_price FROM shares WHERE stock_scrip = $1",
		req.Scrip,
	).Scan(&shareID, &price)

	if err == sql.ErrNoRows {
		return failed(&models.UnknownScripError{Scrip: req.Scrip})
	}
	if err != nil {
		return failed(fmt.Errorf("database error: %w", err))
	}

	// 2. Check user exists
	var userID int
	err = tx.QueryRow("SELECT id FROM users WHERE id = $1", req.UserID).Scan(&userID)
	if err == sql.ErrNoRows {
		return failed(models.ErrUserNotFound)
	}
	if err != nil {
		return failed(fmt.Errorf("database error: %w", err))
	}

	// 3. Read the wallet. A user who never deposited has no row yet;
	// they trade against a zero balance.
	balance := decimal.Zero
	err = tx.QueryRow(
		"SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE",
		req.UserID,
	).Scan(&balance)
	if err != nil && err != sql.ErrNoRows {
		return failed(fmt.Errorf("database error: %w", err))
	}

	// 4. Read the holding, if any
	held := 0
	haveHolding := true
	err = tx.QueryRow(
		"SELECT quantity FROM portfolios WHERE user_id = $1 AND share_id = $2 FOR UPDATE",
		req.UserID, shareID,
	).Scan(&held)
	if err == sql.ErrNoRows {
		haveHolding = false
	} else if err != nil {
		return failed(fmt.Errorf("database error: %w", err))
	}

	// 5. Compute the settlement
	var plan models.Settlement
	var detail string

	switch models.TradeSide(req.TransactionType) {
	case models.SideBuy:
		plan, err = models.PlanBuy(balance, price, held, req.ScripCount)
		detail = fmt.Sprintf("Scrip(%s) purchase successful.", req.Scrip)
	case models.SideSell:
		if !haveHolding {
			return failed(&models.NoHoldingError{Scrip: req.Scrip})
		}
		plan, err = models.PlanSell(balance, price, held, req.ScripCount)
		detail = fmt.Sprintf("Scrip(%s) sell successful.", req.Scrip)
	default:
		return failed(&models.UnknownTradeSideError{Side: req.TransactionType})
	}
	if err != nil {
		return failed(err)
	}

	// 6. Apply the portfolio side of the settlement
	if plan.RemoveHolding {
		_, err = tx.Exec(
			"DELETE FROM portfolios WHERE user_id = $1 AND share_id = $2",
			req.UserID, shareID,
		)
	} else {
		_, err = tx.Exec(`
            INSERT INTO portfolios (user_id, share_id, quantity)
            VALUES ($1, $2, $3)
            ON CONFLICT (user_id, share_id)
            DO UPDATE SET quantity = EXCLUDED.quantity
        `, req.UserID, shareID, plan.NewQuantity)
	}
	if err != nil {
		return failed(fmt.Errorf("failed to update portfolio: %w", err))
	}

	// 7. Apply the wallet side
	_, err = tx.Exec(`
        INSERT INTO wallets (user_id, balance)
        VALUES ($1, $2)
        ON CONFLICT (user_id)
        DO UPDATE SET balance = EXCLUDED.balance
    `, req.UserID, plan.NewBalance)
	if err != nil {
		return failed(fmt.Errorf("failed to update balance: %w", err))
	}

	// 8. Record the trade in the ledger
	_, err = tx.Exec(`
        INSERT INTO trades (id, user_id, stock_scrip, trade_type, quantity, price, total_amount)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, uuid.NewString(), req.UserID, req.Scrip, req.TransactionType,
		plan.Quantity, price, plan.Amount)
	if err != nil {
		return failed(fmt.Errorf("failed to record trade: %w", err))
	}

	// Commit transaction (all or nothing!)
	if err = tx.Commit(); err != nil {
		return failed(fmt.Errorf("transaction commit failed: %w", err))
	}

	return models.TradeResult{
		Detail:              detail,
		CurrentBalance:      plan.NewBalance,
		CurrentScripBalance: plan.NewQuantity,
		TransactionAmount:   plan.Amount,
	}
}

func failed(err error) models.TradeResult {
	return models.TradeResult{Err: err}
}

// TradeShare handles POST /api/trades - buying and selling of scrips
func (tp *TradeProcessor) TradeShare(c *gin.Context) {
	var req models.TradeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result := tp.SubmitTrade(req)
	if result.Err != nil {
		status, payload := tradeFailureResponse(result.Err)
		c.JSON(status, payload)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detail":                result.Detail,
		"current_balance":       result.CurrentBalance,
		"current_scrip_balance": result.CurrentScripBalance,
		"transaction_amount":    result.TransactionAmount,
	})
}

// tradeFailureResponse maps a trade failure to an HTTP status and a payload
// carrying the numbers behind the rejection.
func tradeFailureResponse(err error) (int, gin.H) {
	var unknownScrip *models.UnknownScripError
	var insufficientFunds *models.InsufficientFundsError
	var insufficientShares *models.InsufficientSharesError
	var noHolding *models.NoHoldingError
	var invalidQuantity *models.InvalidQuantityError
	var negativeBalance *models.NegativeBalanceError

	switch {
	case errors.As(err, &unknownScrip):
		return http.StatusNotFound, gin.H{
			"detail": fmt.Sprintf(
				"%s is not a valid stock symbol. See all available scrip through '/api/scrips'.",
				unknownScrip.Scrip),
		}
	case errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound, gin.H{"detail": "User not found."}
	case errors.As(err, &insufficientFunds):
		return http.StatusBadRequest, gin.H{
			"detail":           "Not enough balance.",
			"current_balance":  insufficientFunds.CurrentBalance,
			"required_balance": insufficientFunds.RequiredBalance,
		}
	case errors.As(err, &insufficientShares):
		return http.StatusBadRequest, gin.H{
			"detail":                 "Not enough scrips.",
			"current_scrip_balance":  insufficientShares.CurrentScripBalance,
			"required_scrip_balance": insufficientShares.RequiredScripBalance,
		}
	case errors.As(err, &noHolding):
		return http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("No scrip(%s) in portfolio", noHolding.Scrip),
		}
	case errors.As(err, &invalidQuantity):
		return http.StatusBadRequest, gin.H{
			"detail": "Scrip count must be at least 1.",
		}
	case errors.As(err, &negativeBalance):
		return http.StatusBadRequest, gin.H{
			"detail":          "Can't have balance less than 0.",
			"current_balance": negativeBalance.Balance,
		}
	default:
		log.Printf("Trade failed: %v", err)
		return http.StatusInternalServerError, gin.H{"detail": "Trade failed."}
	}
}

// GetTradeHistory handles GET /api/trades/:userId
func GetTradeHistory(c *gin.Context) {
	userID := c.Param("userId")

	rows, err := db.DB.Query(`
        SELECT id, stock_scrip, trade_type, quantity, price, total_amount, created_at
        FROM trades
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 50
    `, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch trades."})
		return
	}
	defer rows.Close()

	trades := make([]models.TradeRecord, 0)
	for rows.Next() {
		var t models.TradeRecord
		err := rows.Scan(&t.ID, &t.StockScrip, &t.TradeType, &t.Quantity,
			&t.Price, &t.Amount, &t.CreatedAt)
		if err != nil {
			continue
		}
		trades = append(trades, t)
	}

	c.JSON(http.StatusOK, gin.H{
		"trades": trades,
		"count":  len(trades),
	})
}
