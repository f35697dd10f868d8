package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

func TestStorePlaceholderFormat(t *testing.T) {
	// sql.Open does not connect, so no server is needed for postgres.
	pg, err := sql.Open(DriverPostgres, "postgres://localhost/lorcana?sslmode=disable")
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer pg.Close()

	lite, err := NewSQLiteDB(&Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer lite.Close()

	tests := []struct {
		name string
		db   *sqlx.DB
		want string
	}{
		{"postgres", sqlx.NewDb(pg, DriverPostgres), "SELECT id FROM decks WHERE id = $1 AND owner_id = $2"},
		{"sqlite", lite, "SELECT id FROM decks WHERE id = ? AND owner_id = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(tt.db)
			query, args, err := s.sb.Select("id").
				From("decks").
				Where(squirrel.Eq{"id": "d1"}).
				Where(squirrel.Eq{"owner_id": "u1"}).
				ToSql()
			if err != nil {
				t.Fatalf("build query: %v", err)
			}
			if query != tt.want {
				t.Errorf("query = %q, want %q", query, tt.want)
			}
			if len(args) != 2 {
				t.Errorf("args = %v", args)
			}
		})
	}
}
