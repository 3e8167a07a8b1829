package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/aavashbaral/stock-market-tracker/internal/db"
	"github.com/aavashbaral/stock-market-tracker/internal/models"
)

var minDeposit = decimal.NewFromInt(1)

// AddMoney handles POST /api/wallet/:userId/add-money
// The wallet is created on the first deposit.
func AddMoney(c *gin.Context) {
	userID := c.Param("userId")

	var req models.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.Amount.LessThan(minDeposit) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Amount must be at least 1."})
		return
	}

	var exists int
	err := db.DB.QueryRow("SELECT id FROM users WHERE id = $1", userID).Scan(&exists)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error."})
		return
	}

	var wallet models.Wallet
	err = db.DB.QueryRow(`
        INSERT INTO wallets (user_id, balance)
        VALUES ($1, $2)
        ON CONFLICT (user_id)
        DO UPDATE SET balance = wallets.balance + EXCLUDED.balance
        RETURNING user_id, balance
    `, userID, req.Amount.Round(2)).Scan(&wallet.UserID, &wallet.Balance)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update balance."})
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// GetWallet handles GET /api/wallet/:userId
func GetWallet(c *gin.Context) {
	userID := c.Param("userId")

	var wallet models.Wallet
	err := db.DB.QueryRow(
		"SELECT user_id, balance FROM wallets WHERE user_id = $1",
		userID,
	).Scan(&wallet.UserID, &wallet.Balance)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No wallet for user."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error."})
		return
	}

	c.JSON(http.StatusOK, wallet)
}
