package main // Entry point for the REST API process

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stock-quote-api/internal/config"
	"github.com/iliyamo/stock-quote-api/internal/database"
	"github.com/iliyamo/stock-quote-api/internal/handler"
	"github.com/iliyamo/stock-quote-api/internal/middleware"
	"github.com/iliyamo/stock-quote-api/internal/notification"
	"github.com/iliyamo/stock-quote-api/internal/queue"
	"github.com/iliyamo/stock-quote-api/internal/repository"
	"github.com/iliyamo/stock-quote-api/internal/router"
	"github.com/iliyamo/stock-quote-api/internal/stooq"
)

// main composes the whole process explicitly: every component is constructed
// here and handed its dependencies, with no container or registry in between.
func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
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

	// Redis is optional; a nil client disables rate limiting and the quote cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and quote cache disabled")
	}

	pub := queue.NewPublisher(cfg.RMQEnabled, cfg.AMQPURL())
	defer pub.Close()

	users := repository.NewUserRepo(db)
	queries := repository.NewStockQueryRepo(db)

	notifier := notification.NewNotifier(pub, cfg.MailerFrom, cfg.MailerFromName)
	stocks := stooq.NewClient(cfg.StooqBaseURL)
	cache := stooq.NewCache(config.LoadQuoteCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.Register(e, cfg.JWTSecret,
		handler.NewAuthHandler(cfg, users),
		handler.NewUserHandler(cfg, users),
		handler.NewStockHandler(stocks, cache, queries, notifier),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
