package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// dsn builds the driver connection string. clientFoundRows=true makes
// RowsAffected report matched rows instead of changed rows, so an
// UPDATE that resubmits identical values still counts as a hit.
func dsn(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATE/DATETIME -> time.Time | loc=UTC keeps times consistent
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, host, port, name)
}

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// migrations are idempotent; the FK with ON DELETE CASCADE is what
// removes a user's transactions when the account goes away.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username VARCHAR(64) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		type VARCHAR(16) NOT NULL,
		amount DECIMAL(14,2) NOT NULL,
		description TEXT,
		date DATE NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY idx_transactions_user (user_id),
		CONSTRAINT fk_transactions_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
