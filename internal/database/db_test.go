package database

import (
	"strings"
	"testing"
)

func TestOptionsDSN(t *testing.T) {
	t.Parallel()

	full := Options{User: "stock", Password: "pw", Host: "db.internal", Port: "3306", Name: "stock_api"}
	if got, want := full.dsn(), "stock:pw@tcp(db.internal:3306)/stock_api?charset=utf8mb4&parseTime=true&loc=UTC"; got != want {
		t.Fatalf("dsn with password:\n got %q\nwant %q", got, want)
	}

	// An empty password must not leave a dangling colon in the auth part.
	noPass := Options{User: "stock", Host: "localhost", Port: "3306", Name: "stock_api"}
	if got := noPass.dsn(); !strings.HasPrefix(got, "stock@tcp(") {
		t.Fatalf("dsn without password: got %q", got)
	}
}
