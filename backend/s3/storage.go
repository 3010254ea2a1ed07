package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/mwantia/sectorfs/data"
)

func (sb *S3Backend) ReadObject(ctx context.Context, name string) ([]byte, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	return sb.readObject(ctx, name)
}

func (sb *S3Backend) WriteObject(ctx context.Context, name string, buffer []byte) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.putObject(ctx, name, buffer)
}

func (sb *S3Backend) AppendObject(ctx context.Context, name string, buffer []byte) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	// S3 doesn't support appends - we need to read-modify-write
	existing, err := sb.readObject(ctx, name)
	if err != nil && err != data.ErrNotExist {
		return err
	}

	return sb.putObject(ctx, name, append(existing, buffer...))
}

func (sb *S3Backend) ExistsObject(ctx context.Context, name string) (bool, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	_, err := sb.client.StatObject(ctx, sb.bucketName, sb.buildKey(name), minio.StatObjectOptions{})
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (sb *S3Backend) DeleteObject(ctx context.Context, name string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key := sb.buildKey(name)

	// RemoveObject succeeds for missing keys
	if _, err := sb.client.StatObject(ctx, sb.bucketName, key, minio.StatObjectOptions{}); err != nil {
		if isNotExist(err) {
			return data.ErrNotExist
		}
		return err
	}

	return sb.client.RemoveObject(ctx, sb.bucketName, key, minio.RemoveObjectOptions{})
}

func (sb *S3Backend) readObject(ctx context.Context, name string) ([]byte, error) {
	object, err := sb.client.GetObject(ctx, sb.bucketName, sb.buildKey(name), minio.GetObjectOptions{})
	if err != nil {
		if isNotExist(err) {
			return nil, data.ErrNotExist
		}
		return nil, err
	}
	defer object.Close()

	buffer, err := io.ReadAll(object)
	if err != nil {
		if isNotExist(err) {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	return buffer, nil
}

func (sb *S3Backend) putObject(ctx context.Context, name string, buffer []byte) error {
	_, err := sb.client.PutObject(ctx, sb.bucketName, sb.buildKey(name), bytes.NewReader(buffer), int64(len(buffer)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	return err
}
