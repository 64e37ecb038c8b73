package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
// Use MemoryPath for an ephemeral database that disappears on Close.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A second connection to ":memory:" would see a different, empty database.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS ratings (
			reader TEXT NOT NULL,
			book TEXT NOT NULL,
			weight INTEGER NOT NULL,
			PRIMARY KEY (reader, book)
		);

		CREATE INDEX IF NOT EXISTS idx_ratings_book ON ratings(book);
	`

	_, err := db.Exec(schema)
	return err
}
