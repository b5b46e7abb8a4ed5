package database

import (
	"database/sql"
	"fmt"
)

// The schema sticks to types both postgres and sqlite accept.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS console_sessions (
    profile TEXT PRIMARY KEY,
    token TEXT NOT NULL,
    role TEXT NOT NULL,
    identity TEXT NOT NULL,
    login_time BIGINT NOT NULL
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
