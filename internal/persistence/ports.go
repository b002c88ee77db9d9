package persistence

import "context"

// KVStore is the durable key/value store the gateway persists into.
// Put must replace any prior value atomically.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}
