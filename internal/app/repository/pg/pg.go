package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	file_size BIGINT NOT NULL,
	file_format TEXT NOT NULL,
	storage_key TEXT NOT NULL,
	transcription_text TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	processing_time DOUBLE PRECISION,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_status ON transcriptions(status);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions(created_at);
`

// PostgresDB is the PostgreSQL-backed record store.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB connects with the given DSN and ensures the schema.
func NewPostgresDB(dsn string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PostgresDB{db: db}, nil
}

// NewPostgresDBFromConn wraps an existing connection. Used by tests.
func NewPostgresDBFromConn(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}
