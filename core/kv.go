package core

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by KVStore.Get when the key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is a durable string-keyed slot store (browser local storage on the original client).
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
