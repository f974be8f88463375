package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"snowrent/internal/config"
	"snowrent/internal/infrastructure/database"
)

// SetupTestDB opens a migrated, seeded SQLite database in a temp dir. It is
// closed when the test ends.
func SetupTestDB(t *testing.T) (*sql.DB, database.Dialect) {
	t.Helper()

	db, dialect, err := database.NewConnection(config.DatabaseConfig{
		Driver:       "sqlite3",
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db, dialect); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db, dialect
}

// SetupMySQLTestDB connects to the server in TEST_MYSQL_DSN and skips the
// test when it is not set or not reachable.
func SetupMySQLTestDB(t *testing.T) (*sql.DB, database.Dialect) {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	if err := database.Migrate(context.Background(), db, database.MySQL); err != nil {
		db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { CleanupTestDB(t, db) })
	return db, database.MySQL
}

// CleanupTestDB empties every table written by tests and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"reservations", "rental_requests", "users"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// InsertUser adds a user row and returns its id.
func InsertUser(t *testing.T, db *sql.DB, username string) uint {
	t.Helper()

	res, err := db.Exec(
		"INSERT INTO users (username, email, password) VALUES (?, ?, ?)",
		username, username+"@example.com", "not-a-real-hash",
	)
	if err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read user id: %v", err)
	}
	return uint(id)
}

// InsertEquipment adds an item with the given stock and returns its id.
func InsertEquipment(t *testing.T, db *sql.DB, name string, dailyRate float64, quantity int) int {
	t.Helper()

	res, err := db.Exec(
		"INSERT INTO equipment (name, category, size, `condition`, daily_rate, total_quantity, available_quantity) VALUES (?, 'snowboard', '154cm', 'good', ?, ?, ?)",
		name, dailyRate, quantity, quantity,
	)
	if err != nil {
		t.Fatalf("failed to insert equipment: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read equipment id: %v", err)
	}
	return int(id)
}
