package model

import "time"

// StockQuery is one row of a user's lookup history in the `stock_queries`
// table.  The OHLC columns are nullable in the schema but are always
// populated here because a lookup is only persisted after the provider
// returned a complete quote.
type StockQuery struct {
	ID        uint64    // stock_queries.id
	UserID    uint64    // stock_queries.user_id
	Symbol    string    // stock_queries.symbol
	Name      string    // stock_queries.name
	Open      float64   // stock_queries.open
	High      float64   // stock_queries.high
	Low       float64   // stock_queries.low
	Close     float64   // stock_queries.close
	CreatedAt time.Time // stock_queries.created_at
	UpdatedAt time.Time // stock_queries.updated_at
}
