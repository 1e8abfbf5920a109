package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stock-quote-api/internal/utils"
)

const testSecret = "test-secret"

// invoke runs the gate against a request with the given Authorization header
// and reports the recorder plus whether the downstream handler ran.
func invoke(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/stock?q=AAPL.US", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called, c
}

func TestJWTAuth_MissingToken(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"", "Basic abc", "Bearer ", "bearer lowercase"} {
		rec, called, _ := invoke(t, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, called, "handler must not run for header %q", header)
		assert.Contains(t, rec.Body.String(), "MissingToken")
		assert.Contains(t, rec.Body.String(), "JWT token not found")
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.IssueToken(testSecret, 7, "u@example.com", -60)
	require.NoError(t, err)

	rec, called, _ := invoke(t, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "ExpiredToken")
	assert.Contains(t, rec.Body.String(), "Token has expired")
}

func TestJWTAuth_InvalidSignature(t *testing.T) {
	t.Parallel()

	tok, err := utils.IssueToken("some-other-secret", 7, "u@example.com", 3600)
	require.NoError(t, err)

	rec, called, _ := invoke(t, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "InvalidSignature")
}

func TestJWTAuth_Malformed(t *testing.T) {
	t.Parallel()

	rec, called, _ := invoke(t, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "Malformed")
}

func TestJWTAuth_ValidTokenInjectsIdentity(t *testing.T) {
	t.Parallel()

	tok, err := utils.IssueToken(testSecret, 99, "trader@example.com", 3600)
	require.NoError(t, err)

	rec, called, c := invoke(t, "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
	assert.Equal(t, uint64(99), c.Get("user_id"))
	assert.Equal(t, "trader@example.com", c.Get("email"))
}

func TestJWTAuth_DistinctMessagesSameStatus(t *testing.T) {
	t.Parallel()

	expired, err := utils.IssueToken(testSecret, 1, "u@example.com", -1)
	require.NoError(t, err)
	forged, err := utils.IssueToken("wrong", 1, "u@example.com", 3600)
	require.NoError(t, err)

	bodies := map[string]string{}
	for name, header := range map[string]string{
		"missing":   "",
		"expired":   "Bearer " + expired,
		"forged":    "Bearer " + forged,
		"malformed": "Bearer garbage",
	} {
		rec, _, _ := invoke(t, header)
		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
		bodies[name] = rec.Body.String()
	}
	// Every reason gets its own body.
	seen := map[string]bool{}
	for name, body := range bodies {
		key := strings.TrimSpace(body)
		require.False(t, seen[key], "duplicate body for %s", name)
		seen[key] = true
	}
}
