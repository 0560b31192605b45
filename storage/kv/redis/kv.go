package rediskv

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/bantalo/reportcard/core"
)

// keyPrefix namespaces the application slots, e.g. "reportcard:recentSearches".
const keyPrefix = "reportcard:"

type kvStore struct {
	client *redis.Client
}

var _ core.KVStore = (*kvStore)(nil) // interface compliance check

func NewKVStore(client *redis.Client) core.KVStore {
	return &kvStore{client: client}
}

// Open connects to the configured Redis server and pings it.
func Open(ctx context.Context, conf *core.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "pinging redis at %s", conf.Redis.Addr)
	}
	return client, nil
}

func (kv *kvStore) Get(ctx context.Context, key string) (string, error) {
	val, err := kv.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", core.ErrKeyNotFound
		}
		return "", errors.Wrapf(err, "redis GET %s", key)
	}
	return val, nil
}

func (kv *kvStore) Set(ctx context.Context, key, value string) error {
	if err := kv.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis SET %s", key)
	}
	return nil
}

// Delete is a no-op for missing keys.
func (kv *kvStore) Delete(ctx context.Context, key string) error {
	if err := kv.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.Wrapf(err, "redis DEL %s", key)
	}
	return nil
}
