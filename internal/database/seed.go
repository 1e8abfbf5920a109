package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/iliyamo/stock-quote-api/internal/utils"
)

// Seed creates the default user when the users table is empty.  The email
// and password come from DEFAULT_USERNAME / DEFAULT_PASSWORD so deployments
// can override them; running Seed twice is a no-op.
func Seed(ctx context.Context, db *sql.DB, email, password string, bcryptCost int) error {
	var count int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Printf("seed: users already exist, skipping")
		return nil
	}

	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO users (email, password) VALUES (?,?)", email, hash); err != nil {
		return err
	}
	log.Printf("seed: created default user %s", email)
	return nil
}
