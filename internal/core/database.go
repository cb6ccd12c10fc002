package core

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database wraps sql.DB with additional functionality
type Database struct {
	*sql.DB
	driver string
	logger *Logger
}

// NewDatabase creates a new database wrapper
func NewDatabase(db *sql.DB, driver string, logger *Logger) *Database {
	return &Database{
		DB:     db,
		driver: driver,
		logger: logger,
	}
}

// ResolveDriver maps a DATABASE_URL to a driver name and data source name.
// postgres:// and postgresql:// go to lib/pq; sqlite://path, sqlite:path,
// file: URIs and bare paths go to the sqlite driver.
func ResolveDriver(databaseURL string) (driver, dsn string, err error) {
	databaseURL = strings.TrimSpace(databaseURL)
	lower := strings.ToLower(databaseURL)

	switch {
	case databaseURL == "":
		return "", "", fmt.Errorf("database url is empty")
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DriverPostgres, databaseURL, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return DriverSQLite, databaseURL[len("sqlite://"):], nil
	case strings.HasPrefix(lower, "sqlite:"):
		return DriverSQLite, databaseURL[len("sqlite:"):], nil
	case strings.HasPrefix(lower, "file:"):
		return DriverSQLite, databaseURL, nil
	case strings.Contains(lower, "://"):
		scheme := lower[:strings.Index(lower, "://")]
		return "", "", fmt.Errorf("unsupported database scheme %q", scheme)
	default:
		return DriverSQLite, databaseURL, nil
	}
}

// OpenDatabase opens (without connecting) the database behind databaseURL
func OpenDatabase(databaseURL string, logger *Logger) (*Database, error) {
	driver, dsn, err := ResolveDriver(databaseURL)
	if err != nil {
		return nil, NewConfigurationError("invalid DATABASE_URL", err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, NewDatabaseError("failed to open database", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return NewDatabase(db, driver, logger), nil
}

// Driver returns the database/sql driver name
func (db *Database) Driver() string {
	return db.driver
}

// PingWithTimeout pings the database with a timeout
func (db *Database) PingWithTimeout(ctx context.Context, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return db.PingContext(pingCtx)
}

// ListTables returns up to limit user table names in alphabetical order
func (db *Database) ListTables(ctx context.Context, limit int) ([]string, error) {
	var query string
	switch db.driver {
	case DriverPostgres:
		query = `SELECT table_name FROM information_schema.tables
			WHERE table_schema = current_schema() ORDER BY table_name LIMIT $1`
	case DriverSQLite:
		query = `SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name LIMIT ?`
	default:
		return nil, fmt.Errorf("listing tables is not supported for driver %q", db.driver)
	}

	queryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rows, err := db.QueryContext(queryCtx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	tables := make([]string, 0, limit)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tables: %w", err)
	}

	return tables, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	db.logger.Info("Closing database connection", "driver", db.driver)
	return db.DB.Close()
}

// LogStats logs database statistics
func (db *Database) LogStats() {
	stats := db.Stats()
	db.logger.Debug("Database stats",
		"driver", db.driver,
		"max_open_connections", stats.MaxOpenConnections,
		"open_connections", stats.OpenConnections,
		"in_use", stats.InUse,
		"idle", stats.Idle,
		"wait_count", stats.WaitCount,
		"wait_duration", stats.WaitDuration,
	)
}
