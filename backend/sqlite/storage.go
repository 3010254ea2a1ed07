package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mwantia/sectorfs/data"
)

func (sb *SQLiteBackend) ReadObject(ctx context.Context, name string) ([]byte, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	var content []byte
	err := sb.db.QueryRowContext(ctx, "SELECT content FROM vfs_objects WHERE name = ?", name).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	if content == nil {
		content = []byte{}
	}

	return content, nil
}

func (sb *SQLiteBackend) WriteObject(ctx context.Context, name string, buffer []byte) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return upsertObject(ctx, sb.db, name, buffer)
}

func (sb *SQLiteBackend) AppendObject(ctx context.Context, name string, buffer []byte) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	tx, err := sb.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var content []byte
	err = tx.QueryRowContext(ctx, "SELECT content FROM vfs_objects WHERE name = ?", name).Scan(&content)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	content = append(content, buffer...)
	if err := upsertObject(ctx, tx, name, content); err != nil {
		return err
	}

	return tx.Commit()
}

func (sb *SQLiteBackend) ExistsObject(ctx context.Context, name string) (bool, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	var exists int
	err := sb.db.QueryRowContext(ctx, "SELECT 1 FROM vfs_objects WHERE name = ?", name).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (sb *SQLiteBackend) DeleteObject(ctx context.Context, name string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	result, err := sb.db.ExecContext(ctx, "DELETE FROM vfs_objects WHERE name = ?", name)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func (sb *SQLiteBackend) RenameObject(ctx context.Context, from, to string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	tx, err := sb.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM vfs_objects WHERE name = ? AND name <> ?", to, from); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "UPDATE vfs_objects SET name = ?, modify_time = ? WHERE name = ?", to, time.Now().Unix(), from)
	if err != nil {
		return err
	}

	if err := requireAffected(result); err != nil {
		return err
	}

	return tx.Commit()
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return data.ErrNotExist
	}

	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertObject(ctx context.Context, db execer, name string, buffer []byte) error {
	if buffer == nil {
		buffer = []byte{}
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO vfs_objects (name, content, size, modify_time) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET content = excluded.content, size = excluded.size, modify_time = excluded.modify_time
	`, name, buffer, len(buffer), time.Now().Unix())
	return err
}
