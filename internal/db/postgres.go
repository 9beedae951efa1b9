package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS product (
	id_product       SERIAL PRIMARY KEY,
	product_name     TEXT NOT NULL UNIQUE,
	product_quantity INTEGER NOT NULL,
	product_price    INTEGER NOT NULL,
	date_updated     TIMESTAMP NOT NULL DEFAULT now()
)`

// Earlier schemas used TIMESTAMPTZ, which pgx scans back in local time and
// shifts calendar dates west of UTC. Stored values are UTC midnights.
const postgresDateColumn = `SELECT data_type FROM information_schema.columns
	WHERE table_schema = current_schema() AND table_name = 'product' AND column_name = 'date_updated'`

const postgresDateMigration = `ALTER TABLE product
	ALTER COLUMN date_updated TYPE TIMESTAMP USING date_updated AT TIME ZONE 'UTC',
	ALTER COLUMN date_updated SET DEFAULT now()`

// ConnectPostgres opens a pgx-backed connection and creates the product
// table if it does not exist yet.
func ConnectPostgres(dbUrl string) (*sql.DB, error) {
	if dbUrl == "" {
		return nil, errors.New("postgres store requires a database URL (DATABASE_URL)")
	}

	db, err := sql.Open("pgx", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	var dataType string
	if err := db.QueryRowContext(ctx, postgresDateColumn).Scan(&dataType); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if dataType == "timestamp with time zone" {
		if _, err := db.ExecContext(ctx, postgresDateMigration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate date column: %w", err)
		}
	}

	return db, nil
}
