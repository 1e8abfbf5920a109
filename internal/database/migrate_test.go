package database

import "testing"

// The migration list is append-only and name-keyed; a duplicate or empty
// name would silently corrupt the bookkeeping table.
func TestMigrations_NamesUniqueAndComplete(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, m := range Migrations {
		if m.Name == "" {
			t.Fatalf("migration with empty name")
		}
		if seen[m.Name] {
			t.Fatalf("duplicate migration name %q", m.Name)
		}
		seen[m.Name] = true
		if m.Up == "" || m.Down == "" {
			t.Fatalf("migration %q missing up or down statement", m.Name)
		}
	}
}
