package database

// Schema management is a statically-compiled, ordered list of migration
// descriptors.  Applied names are tracked in a `migrations` bookkeeping
// table so running the migrator is idempotent.  There is deliberately no
// directory scanning or convention-based discovery here.

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Migration pairs a unique name with its up and down statements.
type Migration struct {
	Name string
	Up   string
	Down string
}

// Migrations is the complete ordered schema history of the service.
// Append only; never reorder or edit an applied entry.
var Migrations = []Migration{
	{
		Name: "create_users_table",
		Up: `CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		Down: "DROP TABLE IF EXISTS users",
	},
	{
		Name: "create_stock_queries_table",
		Up: `CREATE TABLE IF NOT EXISTS stock_queries (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			symbol VARCHAR(20) NOT NULL,
			name VARCHAR(100) NULL,
			open DECIMAL(10,2) NULL,
			high DECIMAL(10,2) NULL,
			low DECIMAL(10,2) NULL,
			close DECIMAL(10,2) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT fk_stock_queries_user FOREIGN KEY (user_id)
				REFERENCES users(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		Down: "DROP TABLE IF EXISTS stock_queries",
	},
}

// Migrate applies every migration that has not been recorded yet, in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return err
	}
	applied, err := appliedSet(ctx, db)
	if err != nil {
		return err
	}
	for _, m := range Migrations {
		if applied[m.Name] {
			continue
		}
		if _, err := db.ExecContext(ctx, m.Up); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO migrations (migration) VALUES (?)", m.Name); err != nil {
			return fmt.Errorf("record migration %s: %w", m.Name, err)
		}
		log.Printf("migrated: %s", m.Name)
	}
	return nil
}

// RollbackLast reverts the most recently applied migration, if any.
func RollbackLast(ctx context.Context, db *sql.DB) error {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return err
	}
	applied, err := appliedSet(ctx, db)
	if err != nil {
		return err
	}
	for i := len(Migrations) - 1; i >= 0; i-- {
		m := Migrations[i]
		if !applied[m.Name] {
			continue
		}
		if _, err := db.ExecContext(ctx, m.Down); err != nil {
			return fmt.Errorf("rollback %s: %w", m.Name, err)
		}
		if _, err := db.ExecContext(ctx,
			"DELETE FROM migrations WHERE migration=?", m.Name); err != nil {
			return fmt.Errorf("unrecord migration %s: %w", m.Name, err)
		}
		log.Printf("rolled back: %s", m.Name)
		return nil
	}
	log.Printf("nothing to roll back")
	return nil
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS migrations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		migration VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`)
	return err
}

func appliedSet(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT migration FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}
