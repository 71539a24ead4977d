package storage

import "database/sql"

// migrateV002 keys documents on the scan that produced them. Rows from
// before this migration keep a NULL scan_id, which the unique index allows.
func migrateV002(tx *sql.Tx) error {
	stmts := []string{
		`ALTER TABLE documents ADD COLUMN scan_id TEXT`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_scan_id ON documents(scan_id)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
