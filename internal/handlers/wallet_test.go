package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/aavashbaral/stock-market-tracker/internal/db"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	{
		api.GET("/portfolio/:userId", GetPortfolio)
		api.GET("/scrips", GetAllScrips)
		api.POST("/scrips", CreateScrip)
		api.POST("/wallet/:userId/add-money", AddMoney)
		api.GET("/wallet/:userId", GetWallet)
	}

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	payload := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, payload
}

func TestAddMoney_CreatesWalletOnFirstDeposit(t *testing.T) {
	database := db.SetupTestDB(t)
	defer database.Close()
	defer db.CleanupTestDB(t, database)

	var userID int
	err := database.QueryRow(
		"INSERT INTO users (username, email) VALUES ('walletless', 'walletless@test.com') RETURNING id",
	).Scan(&userID)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	router := setupRouter()

	w, payload := doJSON(t, router,
		http.MethodPost, fmt.Sprintf("/api/wallet/%d/add-money", userID),
		`{"amount": 250.50}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if payload["balance"].(float64) != 250.50 {
		t.Errorf("Expected balance 250.50, got %v", payload["balance"])
	}
}

func TestAddMoney_Accumulates(t *testing.T) {
	database := db.SetupTestDB(t)
	defer database.Close()
	defer db.CleanupTestDB(t, database)

	userID := db.CreateTestUser(t, database, "depositor", "100.00")

	router := setupRouter()

	w, payload := doJSON(t, router,
		http.MethodPost, fmt.Sprintf("/api/wallet/%d/add-money", userID),
		`{"amount": 49.99}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if payload["balance"].(float64) != 149.99 {
		t.Errorf("Expected balance 149.99, got %v", payload["balance"])
	}
}

func TestAddMoney_RejectsAmountBelowOne(t *testing.T) {
	database := db.SetupTestDB(t)
	defer database.Close()
	defer db.CleanupTestDB(t, database)

	userID := db.CreateTestUser(t, database, "depositor", "100.00")

	router := setupRouter()

	w, _ := doJSON(t, router,
		http.MethodPost, fmt.Sprintf("/api/wallet/%d/add-money", userID),
		`{"amount": 0.50}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// Balance must be untouched
	if balance := queryBalance(t, database, userID); !balance.Equal(dec(t, "100.00")) {
		t.Errorf("Expected balance unchanged at 100.00, got %s", balance)
	}
}

func TestAddMoney_UnknownUser(t *testing.T) {
	database := db.SetupTestDB(t)
	defer database.Close()
	defer db.CleanupTestDB(t, database)

	router := setupRouter()

	w, _ := doJSON(t, router,
		http.MethodPost, "/api/wallet/99999999/add-money",
		`{"amount": 10}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetWallet(t *testing.T) {
	database := db.SetupTestDB(t)
	defer database.Close()
	defer db.CleanupTestDB(t, database)

	userID := db.CreateTestUser(t, database, "holder", "42.00")

	router := setupRouter()

	w, payload := doJSON(t, router,
		http.MethodGet, fmt.Sprintf("/api/wallet/%d", userID), "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if payload["balance"].(float64) != 42.00 {
		t.Errorf("Expected balance 42, got %v", payload["balance"])
	}
}
