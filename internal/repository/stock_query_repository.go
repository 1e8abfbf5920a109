package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/stock-quote-api/internal/model"
)

// StockQueryRepo persists the per-user lookup history ('stock_queries' table).
type StockQueryRepo struct{ DB *sql.DB }

func NewStockQueryRepo(db *sql.DB) *StockQueryRepo { return &StockQueryRepo{DB: db} }

// Insert records a completed quote lookup and returns the row ID.
func (r *StockQueryRepo) Insert(ctx context.Context, q model.StockQuery) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO stock_queries (user_id, symbol, name, open, high, low, close) VALUES (?,?,?,?,?,?,?)",
		q.UserID, q.Symbol, q.Name, q.Open, q.High, q.Low, q.Close)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// HistoryByUser returns a user's past lookups, newest first.
func (r *StockQueryRepo) HistoryByUser(ctx context.Context, userID uint64) ([]model.StockQuery, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, symbol, name, open, high, low, close, created_at, updated_at
		 FROM stock_queries WHERE user_id=? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StockQuery
	for rows.Next() {
		var q model.StockQuery
		if err := rows.Scan(&q.ID, &q.UserID, &q.Symbol, &q.Name,
			&q.Open, &q.High, &q.Low, &q.Close, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
