package storage

import "database/sql"

// migrateV001 creates the catalog, the flat settings table and the ledger
// idempotency table. ledger_entries has no foreign key to documents so that
// deleting a document leaves lifetime totals untouched.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			location   TEXT NOT NULL,
			size_bytes INTEGER NOT NULL DEFAULT 0,
			page_count INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS ledger_entries (
			scan_id     TEXT PRIMARY KEY,
			pages       INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
