package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/aavashbaral/stock-market-tracker/internal/db"
	"github.com/aavashbaral/stock-market-tracker/internal/models"
)

// GetPortfolio handles GET /api/portfolio/:userId
func GetPortfolio(c *gin.Context) {
	userID := c.Param("userId")

	rows, err := db.DB.Query(`
        SELECT s.stock_scrip, s.current_price, p.quantity
        FROM portfolios p
        JOIN shares s ON s.id = p.share_id
        WHERE p.user_id = $1
        ORDER BY s.stock_scrip
    `, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch portfolio."})
		return
	}
	defer rows.Close()

	positions := make([]models.HoldingPosition, 0)
	for rows.Next() {
		var p models.HoldingPosition
		if err := rows.Scan(&p.StockScrip, &p.CurrentPrice, &p.Quantity); err != nil {
			continue
		}
		positions = append(positions, p)
	}

	summary := models.AggregatePortfolio(positions)

	c.JSON(http.StatusOK, gin.H{
		"holdings":     summary.Holdings,
		"total_shares": summary.TotalShares,
		"total_value":  summary.TotalValue,
	})
}

// GetAllScrips handles GET /api/scrips - lists all tradable scrips
func GetAllScrips(c *gin.Context) {
	rows, err := db.DB.Query(`
        SELECT stock_scrip, current_price, last_updated
        FROM shares
        ORDER BY stock_scrip
    `)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch scrips."})
		return
	}
	defer rows.Close()

	scrips := make([]models.Share, 0)
	for rows.Next() {
		var s models.Share
		if err := rows.Scan(&s.StockScrip, &s.CurrentPrice, &s.LastUpdated); err != nil {
			continue
		}
		scrips = append(scrips, s)
	}

	c.JSON(http.StatusOK, gin.H{
		"scrips": scrips,
		"count":  len(scrips),
	})
}

// CreateScrip handles POST /api/scrips - registers a new tradable scrip
func CreateScrip(c *gin.Context) {
	var req models.CreateScripRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.CurrentPrice.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Price can't be negative."})
		return
	}

	var share models.Share
	err := db.DB.QueryRow(`
        INSERT INTO shares (stock_scrip, current_price)
        VALUES ($1, $2)
        RETURNING stock_scrip, current_price, last_updated
    `, req.StockScrip, req.CurrentPrice.Round(2)).Scan(
		&share.StockScrip, &share.CurrentPrice, &share.LastUpdated,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"detail": "Scrip already exists."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create scrip."})
		return
	}

	c.JSON(http.StatusCreated, share)
}
