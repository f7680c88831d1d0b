package domain

import "context"

// KeyValueStore is the port for device-local persistent storage. Get reports
// found=false for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
