package sqlite

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the tables if they are missing.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// DropSchema removes every table created by CreateSchema.
func DropSchema(db *sql.DB) error {
	if _, err := db.Exec(dropSchema); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS config (
    id TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS polls (
    id INTEGER PRIMARY KEY,
    max INTEGER NOT NULL CHECK (max >= 0)
);

CREATE TABLE IF NOT EXISTS participants (
    poll INTEGER NOT NULL,
    added INTEGER NOT NULL,
    person TEXT NOT NULL,
    friend TEXT NOT NULL DEFAULT '/',
    PRIMARY KEY (poll, added, person, friend)
) WITHOUT ROWID;
`

const dropSchema = `
DROP TABLE IF EXISTS participants;
DROP TABLE IF EXISTS polls;
DROP TABLE IF EXISTS config;
`
