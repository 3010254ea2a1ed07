package consul

import (
	"context"
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/sectorfs/data"
)

func (cb *ConsulBackend) ReadObject(ctx context.Context, name string) ([]byte, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	pair, err := cb.get(ctx, name)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, data.ErrNotExist
	}

	if pair.Value == nil {
		return []byte{}, nil
	}

	return pair.Value, nil
}

func (cb *ConsulBackend) WriteObject(ctx context.Context, name string, buffer []byte) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err := cb.checkSize(name, len(buffer)); err != nil {
		return err
	}

	pair := &api.KVPair{
		Key:   cb.buildKey(name),
		Value: buffer,
	}

	_, err := cb.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (cb *ConsulBackend) AppendObject(ctx context.Context, name string, buffer []byte) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	pair, err := cb.get(ctx, name)
	if err != nil {
		return err
	}

	// ModifyIndex 0 only succeeds if the key does not exist yet
	update := &api.KVPair{
		Key: cb.buildKey(name),
	}
	if pair != nil {
		update.Value = append(pair.Value, buffer...)
		update.ModifyIndex = pair.ModifyIndex
	} else {
		update.Value = buffer
	}

	if err := cb.checkSize(name, len(update.Value)); err != nil {
		return err
	}

	ok, _, err := cb.kv.CAS(update, (&api.WriteOptions{}).WithContext(ctx))
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%w: '%s'", data.ErrConflict, name)
	}

	return nil
}

func (cb *ConsulBackend) ExistsObject(ctx context.Context, name string) (bool, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	pair, err := cb.get(ctx, name)
	if err != nil {
		return false, err
	}

	return pair != nil, nil
}

func (cb *ConsulBackend) DeleteObject(ctx context.Context, name string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	pair, err := cb.get(ctx, name)
	if err != nil {
		return err
	}
	if pair == nil {
		return data.ErrNotExist
	}

	_, err = cb.kv.Delete(pair.Key, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (cb *ConsulBackend) RenameObject(ctx context.Context, from, to string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	pair, err := cb.get(ctx, from)
	if err != nil {
		return err
	}
	if pair == nil {
		return data.ErrNotExist
	}

	ops := api.KVTxnOps{
		&api.KVTxnOp{
			Verb:  api.KVCheckIndex,
			Key:   pair.Key,
			Index: pair.ModifyIndex,
		},
		&api.KVTxnOp{
			Verb:  api.KVSet,
			Key:   cb.buildKey(to),
			Value: pair.Value,
		},
		&api.KVTxnOp{
			Verb: api.KVDelete,
			Key:  pair.Key,
		},
	}

	ok, response, _, err := cb.kv.Txn(ops, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return err
	}

	if !ok {
		if response != nil && len(response.Errors) > 0 {
			return fmt.Errorf("%w: '%s': %s", data.ErrConflict, from, response.Errors[0].What)
		}
		return fmt.Errorf("%w: '%s'", data.ErrConflict, from)
	}

	return nil
}

func (cb *ConsulBackend) get(ctx context.Context, name string) (*api.KVPair, error) {
	pair, _, err := cb.kv.Get(cb.buildKey(name), (&api.QueryOptions{}).WithContext(ctx))
	return pair, err
}
