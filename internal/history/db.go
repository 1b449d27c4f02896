package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection-history database.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the history database.
func Open(configDir string) (*DB, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dbPath := filepath.Join(configDir, "history.db")
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	h := &DB{db: sqlDB, path: dbPath}
	if err := h.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return h, nil
}

// Close closes the database.
func (h *DB) Close() error {
	return h.db.Close()
}

// Path returns the path to the history database file.
func (h *DB) Path() string {
	return h.path
}

func (h *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS connections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		serial TEXT NOT NULL,
		address TEXT NOT NULL,
		model TEXT NOT NULL DEFAULT '',
		connect_count INTEGER NOT NULL DEFAULT 1,
		last_connected_at DATETIME NOT NULL,
		UNIQUE(serial, address)
	);

	CREATE INDEX IF NOT EXISTS idx_connections_last ON connections(last_connected_at);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Connection records one device address the tool has connected to.
type Connection struct {
	ID              int64
	Serial          string
	Address         string
	Model           string
	ConnectCount    int
	LastConnectedAt time.Time
}

// RecordConnection inserts or refreshes a successful wireless connection.
func (h *DB) RecordConnection(serial, address, model string) error {
	_, err := h.db.Exec(
		`INSERT INTO connections (serial, address, model, last_connected_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(serial, address) DO UPDATE SET
		   model = excluded.model,
		   connect_count = connect_count + 1,
		   last_connected_at = excluded.last_connected_at`,
		serial, address, model, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("record connection: %w", err)
	}
	return nil
}

// RecentAddrs returns known device addresses, most recently connected first.
// These seed the scanner's fast path.
func (h *DB) RecentAddrs(limit int) ([]string, error) {
	rows, err := h.db.Query(
		`SELECT address FROM connections ORDER BY last_connected_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent addrs: %w", err)
	}
	defer rows.Close()

	var addrs []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan addr: %w", err)
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

// List returns the full connection history, most recent first.
func (h *DB) List(limit int) ([]Connection, error) {
	rows, err := h.db.Query(
		`SELECT id, serial, address, model, connect_count, last_connected_at
		 FROM connections ORDER BY last_connected_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	var conns []Connection
	for rows.Next() {
		var c Connection
		if err := rows.Scan(&c.ID, &c.Serial, &c.Address, &c.Model, &c.ConnectCount, &c.LastConnectedAt); err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// Forget removes every recorded address for a serial. Returns the number of
// rows removed.
func (h *DB) Forget(serial string) (int64, error) {
	res, err := h.db.Exec(`DELETE FROM connections WHERE serial = ?`, serial)
	if err != nil {
		return 0, fmt.Errorf("forget %s: %w", serial, err)
	}
	return res.RowsAffected()
}
