package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	file_size INTEGER NOT NULL,
	file_format TEXT NOT NULL,
	storage_key TEXT NOT NULL,
	transcription_text TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	processing_time REAL,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_status ON transcriptions(status);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions(created_at);
`

// SQLiteDB is the SQLite-backed record store.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the database file and ensures the schema.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}
