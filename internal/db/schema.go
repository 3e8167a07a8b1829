package db

import "fmt"

// Schema statements are idempotent so the server can apply them on every
// start without a separate migration step.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id SERIAL PRIMARY KEY,
		user_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		balance NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (balance >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS shares (
		id SERIAL PRIMARY KEY,
		stock_scrip VARCHAR(16) UNIQUE NOT NULL,
		current_price NUMERIC(12,2) NOT NULL CHECK (current_price >= 0),
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS portfolios (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		share_id INTEGER NOT NULL REFERENCES shares(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		UNIQUE (user_id, share_id)
	)`,
	`CREATE TABLE IF NOT EXISTS trades (
		id UUID PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		stock_scrip VARCHAR(16) NOT NULL,
		trade_type VARCHAR(4) NOT NULL,
		quantity INTEGER NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		total_amount NUMERIC(14,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("error applying schema: %w", err)
		}
	}
	return nil
}
