package database

import (
	"context"
	"database/sql"
	"fmt"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		email VARCHAR(150) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS equipment (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(20) NOT NULL CHECK (category IN ('ski', 'snowboard', 'boots', 'helmet', 'clothing')),
		size VARCHAR(20),
		` + "`condition`" + ` VARCHAR(20) NOT NULL CHECK (` + "`condition`" + ` IN ('excellent', 'good', 'fair', 'poor')),
		daily_rate DECIMAL(10,2) NOT NULL,
		total_quantity INT NOT NULL DEFAULT 1,
		available_quantity INT NOT NULL DEFAULT 1,
		description TEXT,
		image_url VARCHAR(255),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_category (category)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id INT UNSIGNED NOT NULL,
		equipment_id INT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed')),
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (equipment_id) REFERENCES equipment(id),
		INDEX idx_equipment_dates (equipment_id, start_date, end_date),
		INDEX idx_user (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS rental_requests (
		id CHAR(36) NOT NULL PRIMARY KEY,
		reference VARCHAR(16) NOT NULL UNIQUE,
		applicant_name VARCHAR(150) NOT NULL,
		applicant_email VARCHAR(150) NOT NULL,
		applicant JSON NOT NULL,
		persons JSON NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		rent_store VARCHAR(20) NOT NULL,
		return_store VARCHAR(20) NOT NULL,
		days INT NOT NULL,
		total_price INT NOT NULL,
		detail JSON NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'received',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS equipment (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('ski', 'snowboard', 'boots', 'helmet', 'clothing')),
		size TEXT,
		` + "`condition`" + ` TEXT NOT NULL CHECK (` + "`condition`" + ` IN ('excellent', 'good', 'fair', 'poor')),
		daily_rate REAL NOT NULL,
		total_quantity INTEGER NOT NULL DEFAULT 1,
		available_quantity INTEGER NOT NULL DEFAULT 1,
		description TEXT,
		image_url TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		equipment_id INTEGER NOT NULL REFERENCES equipment(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_price REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed')),
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_equipment_dates ON reservations (equipment_id, start_date, end_date)`,
	`CREATE TABLE IF NOT EXISTS rental_requests (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		applicant_name TEXT NOT NULL,
		applicant_email TEXT NOT NULL,
		applicant TEXT NOT NULL,
		persons TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		rent_store TEXT NOT NULL,
		return_store TEXT NOT NULL,
		days INTEGER NOT NULL,
		total_price INTEGER NOT NULL,
		detail TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'received',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

type seedItem struct {
	name        string
	category    string
	size        string
	condition   string
	dailyRate   float64
	quantity    int
	description string
}

var seedCatalog = []seedItem{
	{"Salomon All-Mountain Skis", "ski", "170cm", "excellent", 800, 10, "Pro-level skis for intermediate and advanced skiers"},
	{"Burton Custom Snowboard", "snowboard", "158cm", "good", 600, 8, "All-mountain board for every kind of terrain"},
	{"Leki Ski Poles", "ski", "120cm", "excellent", 100, 20, "Lightweight aluminium poles"},
	{"Salomon Ski Boots", "boots", "42", "good", 400, 15, "Warm and comfortable ski boots"},
	{"POC Helmet", "helmet", "M", "excellent", 200, 25, "High-protection ski helmet"},
	{"Columbia Ski Jacket", "clothing", "L", "good", 300, 12, "Waterproof breathable jacket"},
	{"North Face Ski Pants", "clothing", "32", "good", 250, 15, "Insulated waterproof pants"},
	{"Atomic Junior Skis", "ski", "120cm", "excellent", 500, 5, "Light skis sized for children"},
}

func schemaFor(d Dialect) []string {
	if d == MySQL {
		return mysqlSchema
	}
	return sqliteSchema
}

// Migrate creates missing tables and seeds the catalog when it is empty.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	for _, stmt := range schemaFor(d) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return seed(ctx, db)
}

func seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM equipment").Scan(&count); err != nil {
		return fmt.Errorf("counting equipment: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO equipment (name, category, size, `condition`, daily_rate, total_quantity, available_quantity, description) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	for _, it := range seedCatalog {
		if _, err := tx.ExecContext(ctx, query,
			it.name, it.category, it.size, it.condition, it.dailyRate, it.quantity, it.quantity, it.description,
		); err != nil {
			return fmt.Errorf("seeding equipment %q: %w", it.name, err)
		}
	}

	return tx.Commit()
}
