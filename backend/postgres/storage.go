package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mwantia/sectorfs/data"
)

func (pb *PostgresBackend) ReadObject(ctx context.Context, name string) ([]byte, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	var content []byte
	err := pb.pool.QueryRow(ctx, "SELECT content FROM vfs_objects WHERE name = $1", name).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	if content == nil {
		content = []byte{}
	}

	return content, nil
}

func (pb *PostgresBackend) WriteObject(ctx context.Context, name string, buffer []byte) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if buffer == nil {
		buffer = []byte{}
	}

	_, err := pb.pool.Exec(ctx, `
		INSERT INTO vfs_objects (name, content, size, modify_time) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET content = EXCLUDED.content, size = EXCLUDED.size, modify_time = EXCLUDED.modify_time
	`, name, buffer, int64(len(buffer)), time.Now().Unix())
	return err
}

func (pb *PostgresBackend) AppendObject(ctx context.Context, name string, buffer []byte) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if buffer == nil {
		buffer = []byte{}
	}

	_, err := pb.pool.Exec(ctx, `
		INSERT INTO vfs_objects (name, content, size, modify_time) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET content = vfs_objects.content || EXCLUDED.content,
			size = vfs_objects.size + EXCLUDED.size, modify_time = EXCLUDED.modify_time
	`, name, buffer, int64(len(buffer)), time.Now().Unix())
	return err
}

func (pb *PostgresBackend) ExistsObject(ctx context.Context, name string) (bool, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	var exists bool
	err := pb.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM vfs_objects WHERE name = $1)", name).Scan(&exists)
	return exists, err
}

func (pb *PostgresBackend) DeleteObject(ctx context.Context, name string) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	tag, err := pb.pool.Exec(ctx, "DELETE FROM vfs_objects WHERE name = $1", name)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return data.ErrNotExist
	}

	return nil
}

func (pb *PostgresBackend) RenameObject(ctx context.Context, from, to string) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	return pgx.BeginFunc(ctx, pb.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM vfs_objects WHERE name = $1 AND name <> $2", to, from); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, "UPDATE vfs_objects SET name = $1, modify_time = $2 WHERE name = $3", to, time.Now().Unix(), from)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return data.ErrNotExist
		}

		return nil
	})
}
