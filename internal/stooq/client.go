// Package stooq fetches end-of-day quotes from the Stooq CSV endpoint.
package stooq

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrQuoteNotFound is returned when the provider has no usable data for a
// symbol.  Stooq answers unknown symbols with 200 OK and "N/D" cells, so
// this covers both transport-level emptiness and the N/D case.
var ErrQuoteNotFound = errors.New("quote not found")

// Quote is one provider response: the fields the service persists, returns
// to the caller and renders into the notification mail.
type Quote struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
}

// Client queries the Stooq quote endpoint.  BaseURL is configurable so tests
// can point it at a local server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a client with a bounded request timeout; a slow provider
// must not hold a request thread indefinitely.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch retrieves and parses the quote for a symbol.  The format parameter
// (f=sd2t2ohlcvn) asks for symbol, date, time, OHLC, volume and name as a
// two-line CSV: header row plus one value row.
func (c *Client) Fetch(ctx context.Context, symbol string) (Quote, error) {
	u := fmt.Sprintf("%s?s=%s&f=sd2t2ohlcvn&h&e=csv", c.BaseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Quote{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("stooq: unexpected status %d", resp.StatusCode)
	}
	return parseCSV(resp.Body)
}

// parseCSV maps the header row onto the value row and validates the fields
// the service depends on.  Any missing or "N/D" OHLC value means the symbol
// has no usable quote.
func parseCSV(r io.Reader) (Quote, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Quote{}, ErrQuoteNotFound
	}
	values, err := cr.Read()
	if err != nil || len(values) != len(header) {
		return Quote{}, ErrQuoteNotFound
	}

	row := make(map[string]string, len(header))
	for i, h := range header {
		row[strings.TrimSpace(h)] = strings.TrimSpace(values[i])
	}

	if row["Symbol"] == "" {
		return Quote{}, ErrQuoteNotFound
	}
	q := Quote{Symbol: row["Symbol"], Name: row["Name"]}
	for col, dst := range map[string]*float64{
		"Open": &q.Open, "High": &q.High, "Low": &q.Low, "Close": &q.Close,
	} {
		v, ok := row[col]
		if !ok || v == "" || v == "N/D" {
			return Quote{}, ErrQuoteNotFound
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Quote{}, ErrQuoteNotFound
		}
		*dst = f
	}
	return q, nil
}
