package sqlite

import (
	"database/sql"
	"time"
)

// kvTx groups the statements of one snapshot write
type kvTx struct {
	tx *sql.Tx
}

// Put inserts or replaces a value
func (t *kvTx) Put(key, value string) error {
	_, err := t.tx.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	return err
}

// Remove deletes a value
func (t *kvTx) Remove(key string) error {
	_, err := t.tx.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Touch records the time of the last write
func (t *kvTx) Touch() error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_write_time', ?)`,
		time.Now().Unix())
	return err
}

// Commit commits the transaction
func (t *kvTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *kvTx) Rollback() error {
	return t.tx.Rollback()
}
