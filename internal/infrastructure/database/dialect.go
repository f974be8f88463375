package database

import (
	"database/sql"
	"fmt"
)

// Dialect is the SQL flavour behind a *sql.DB. Both use ? placeholders.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite3"
)

func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case MySQL, SQLite:
		return Dialect(driver), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// ForUpdate is the row-lock suffix for a SELECT inside a transaction. SQLite
// locks the whole database on write, so it has none.
func (d Dialect) ForUpdate() string {
	if d == MySQL {
		return " FOR UPDATE"
	}
	return ""
}

// TxOptions returns the options for a locking read-modify-write transaction.
// MySQL runs it at REPEATABLE READ; SQLite is serializable already.
func (d Dialect) TxOptions() *sql.TxOptions {
	if d == MySQL {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	}
	return nil
}
