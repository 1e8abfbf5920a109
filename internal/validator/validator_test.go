package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUserForCreation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		email      string
		password   string
		wantOK     bool
		wantReason string
	}{
		{"valid", "user@example.com", "secret", true, ""},
		{"missing email", "", "secret", false, "Email is required"},
		{"missing password", "user@example.com", "", false, "Password is required"},
		{"bad email", "not-an-email", "secret", false, "Invalid email format"},
		{"email with spaces", "a b@example.com", "secret", false, "Invalid email format"},
		{"short password", "user@example.com", "12345", false, "Password must be at least 6 characters"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := UserForCreation(tc.email, tc.password)
			assert.Equal(t, tc.wantOK, res.OK)
			assert.Equal(t, tc.wantReason, res.Reason)
		})
	}
}

func TestUserForUpdate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		email    *string
		password *string
		wantOK   bool
	}{
		{"nothing provided", nil, nil, true},
		{"valid email only", strPtr("new@example.com"), nil, true},
		{"valid password only", nil, strPtr("longenough"), true},
		{"empty strings ignored", strPtr(""), strPtr(""), true},
		{"bad email", strPtr("nope"), nil, false},
		{"short password", nil, strPtr("12345"), false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantOK, UserForUpdate(tc.email, tc.password).OK)
		})
	}
}

func TestStockSymbol(t *testing.T) {
	t.Parallel()

	assert.True(t, StockSymbol("AAPL.US").OK)
	res := StockSymbol("")
	assert.False(t, res.OK)
	assert.Equal(t, "Stock symbol is required", res.Reason)
}
