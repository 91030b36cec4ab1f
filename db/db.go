package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the database connection
var DB *sql.DB

// InitDB initializes the database connection from environment variables
func InitDB() error {
	// Get database connection string from environment
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		// Build connection string from individual variables
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")
		sslmode := os.Getenv("DB_SSLMODE")

		if host == "" || user == "" || dbname == "" {
			return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}

		if port == "" {
			port = "5432"
		}
		if sslmode == "" {
			sslmode = "disable"
		}

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	ctx := context.Background()
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := ensureSchema(ctx); err != nil {
		return err
	}

	log.Printf("✓ Database connection established successfully")
	return nil
}

// ensureSchema creates the booking tables if they do not exist yet.
// Line items are the immutable price snapshot taken at submission; position
// preserves the display order of the breakdown.
func ensureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGSERIAL PRIMARY KEY,
	reference_number TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL DEFAULT 'pending',
	property_size TEXT NOT NULL,
	total_amount BIGINT NOT NULL,
	agent_name TEXT NOT NULL,
	agent_email TEXT NOT NULL,
	agent_phone TEXT,
	agent_company TEXT,
	address TEXT NOT NULL,
	city TEXT,
	province TEXT,
	postal_code TEXT,
	property_type TEXT,
	bedrooms INT,
	bathrooms INT,
	preferred_date TEXT,
	time_slot TEXT,
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS booking_line_items (
	id BIGSERIAL PRIMARY KEY,
	booking_id BIGINT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
	position INT NOT NULL,
	name TEXT NOT NULL,
	unit_price BIGINT NOT NULL,
	qty INT NOT NULL,
	line_total BIGINT NOT NULL,
	per_image BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);
CREATE INDEX IF NOT EXISTS idx_booking_line_items_booking_id ON booking_line_items(booking_id);
`
	if _, err := DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
