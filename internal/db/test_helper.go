package db

import (
	"database/sql"
	"fmt"
	"log"
	"testing"
	"time"
)

// SetupTestDB creates a test database connection. Tests that need Postgres
// are skipped when no server is reachable, so the pure-logic suites still
// run everywhere.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5433"),
		getEnv("DB_USER", "trader"),
		getEnv("DB_PASSWORD", "trading123"),
		getEnv("DB_NAME", "stocktracker_db"),
	)

	database, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err = database.Ping(); err != nil {
		t.Skipf("Test database not available: %v", err)
	}

	// Set global DB for handlers
	DB = database

	if err = EnsureSchema(); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	return database
}

// CleanupTestDB cleans up test data
func CleanupTestDB(t *testing.T, database *sql.DB) {
	t.Helper()

	tables := []string{"trades", "portfolios", "wallets", "shares", "users"}
	for _, table := range tables {
		_, err := database.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IS NOT NULL", table))
		if err != nil {
			log.Printf("Warning: Failed to cleanup table %s: %v", table, err)
		}
	}
}

// CreateTestUser creates a test user with a funded wallet and returns user ID
func CreateTestUser(t *testing.T, database *sql.DB, username string, balance string) int {
	t.Helper()

	var userID int

	// Make username unique by adding timestamp
	uniqueUsername := fmt.Sprintf("%s_%d", username, time.Now().UnixNano())

	err := database.QueryRow(
		"INSERT INTO users (username, email) VALUES ($1, $2) RETURNING id",
		uniqueUsername, uniqueUsername+"@test.com",
	).Scan(&userID)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	_, err = database.Exec(
		"INSERT INTO wallets (user_id, balance) VALUES ($1, $2)",
		userID, balance,
	)
	if err != nil {
		t.Fatalf("Failed to create test wallet: %v", err)
	}

	return userID
}

// CreateTestShare registers a scrip at a fixed price and returns its ID
func CreateTestShare(t *testing.T, database *sql.DB, scrip string, price string) int {
	t.Helper()

	var shareID int
	err := database.QueryRow(`
        INSERT INTO shares (stock_scrip, current_price)
        VALUES ($1, $2)
        ON CONFLICT (stock_scrip) DO UPDATE SET current_price = EXCLUDED.current_price
        RETURNING id
    `, scrip, price).Scan(&shareID)
	if err != nil {
		t.Fatalf("Failed to create test share: %v", err)
	}

	return shareID
}

// CreateTestHolding seeds a portfolio row for the user
func CreateTestHolding(t *testing.T, database *sql.DB, userID, shareID, quantity int) {
	t.Helper()

	_, err := database.Exec(`
        INSERT INTO portfolios (user_id, share_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, share_id) DO UPDATE SET quantity = EXCLUDED.quantity
    `, userID, shareID, quantity)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}
}
