package main // Entry point for the schema migrator

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/stock-quote-api/internal/config"
	"github.com/iliyamo/stock-quote-api/internal/database"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	seed := flag.Bool("seed", true, "seed the default user after migrating up")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(database.Options{
		User: cfg.DBUser, Password: cfg.DBPass,
		Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *down {
		if err := database.RollbackLast(ctx, db); err != nil {
			log.Fatalf("rollback: %v", err)
		}
		return
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if *seed {
		if err := database.Seed(ctx, db, cfg.DefaultUsername, cfg.DefaultPassword, cfg.BcryptCost); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}
}
