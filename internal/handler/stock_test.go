package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The missing-symbol check runs before any provider, cache or database
// access, so the handler can be exercised with zero dependencies wired.
func TestGetStock_MissingSymbol(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/stock", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &StockHandler{}
	require.NoError(t, h.GetStock(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Stock symbol is required", resp.Message)
}
