package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stock-quote-api/internal/model"
	"github.com/iliyamo/stock-quote-api/internal/notification"
	"github.com/iliyamo/stock-quote-api/internal/repository"
	"github.com/iliyamo/stock-quote-api/internal/stooq"
	"github.com/iliyamo/stock-quote-api/internal/validator"
)

// StockHandler serves the quote lookup and the per-user lookup history.
type StockHandler struct {
	Client   *stooq.Client
	Cache    *stooq.Cache
	Queries  *repository.StockQueryRepo
	Notifier *notification.Notifier
}

func NewStockHandler(client *stooq.Client, cache *stooq.Cache, q *repository.StockQueryRepo, n *notification.Notifier) *StockHandler {
	return &StockHandler{Client: client, Cache: cache, Queries: q, Notifier: n}
}

type historyItem struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetStock looks up the quote for ?q=SYMBOL, records it in the caller's
// history and queues a notification mail to the caller.  The notification
// is strictly best-effort: a disabled or broken broker never fails the
// lookup itself.
func (h *StockHandler) GetStock(c echo.Context) error {
	symbol := c.QueryParam("q")
	if res := validator.StockSymbol(symbol); !res.OK {
		return fail(c, http.StatusBadRequest, res.Reason)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	quote, hit := h.Cache.Get(ctx, symbol)
	if !hit {
		var err error
		quote, err = h.Client.Fetch(ctx, symbol)
		if err != nil {
			// Unknown symbols and provider outages look the same to the
			// client, matching the upstream's N/D behavior.
			return fail(c, http.StatusNotFound, "Failed to fetch stock data")
		}
		h.Cache.Put(ctx, symbol, quote)
	}

	userID := currentUserID(c)
	if _, err := h.Queries.Insert(ctx, model.StockQuery{
		UserID: userID,
		Symbol: quote.Symbol,
		Name:   quote.Name,
		Open:   quote.Open,
		High:   quote.High,
		Low:    quote.Low,
		Close:  quote.Close,
	}); err != nil {
		return fail(c, http.StatusInternalServerError, "save query failed")
	}

	if email := currentEmail(c); email != "" {
		if !h.Notifier.Notify(ctx, email, "Stock Quote Information", quote) {
			log.Printf("stock: notification not enqueued for %s", email)
		}
	}

	return respond(c, http.StatusOK, "Stock quote retrieved successfully", quote)
}

// GetHistory lists the caller's past lookups, newest first.
func (h *StockHandler) GetHistory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Queries.HistoryByUser(ctx, currentUserID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	items := make([]historyItem, 0, len(rows))
	for _, q := range rows {
		items = append(items, historyItem(q))
	}
	return respond(c, http.StatusOK, "Stock query history retrieved successfully", items)
}
