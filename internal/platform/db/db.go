package db

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

func init() {
	// sqlx only knows "sqlite3" out of the box; modernc registers as "sqlite".
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open connects to Postgres when databaseURL is set and falls back to the
// SQLite file at sqlitePath otherwise.
func Open(databaseURL, sqlitePath string) (*sqlx.DB, error) {
	if strings.TrimSpace(databaseURL) != "" {
		return open(DriverPostgres, databaseURL)
	}
	return open(DriverSQLite, sqlitePath)
}

// OpenMemory opens a private in-memory SQLite database. A single connection
// keeps every query on the same database.
func OpenMemory() (*sqlx.DB, error) {
	db, err := open(DriverSQLite, ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func open(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", driver, err)
	}

	return db, nil
}
