// Package recent keeps the last successful search terms, most recent first.
package recent

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bantalo/reportcard/core"
)

const (
	// StorageKey is the KV slot holding the JSON encoded list.
	StorageKey = "recentSearches"
	// Capacity is the maximum number of entries kept.
	Capacity = 5
)

// Push inserts name at the front of list, drops any other occurrence of it and truncates to Capacity.
// list is left untouched.
func Push(list []string, name string) []string {
	updated := make([]string, 0, Capacity)
	updated = append(updated, name)
	for _, s := range list {
		if len(updated) == Capacity {
			break
		}
		if s != name {
			updated = append(updated, s)
		}
	}
	return updated
}

// Clear returns an empty list.
func Clear() []string {
	return []string{}
}

// Decode parses a stored list. Absent or malformed content yields an empty list.
// Duplicates and entries past Capacity are dropped.
func Decode(raw string) []string {
	var stored []string
	if raw == "" || json.Unmarshal([]byte(raw), &stored) != nil {
		return Clear()
	}
	list := Clear()
	for i := len(stored) - 1; i >= 0; i-- {
		list = Push(list, stored[i])
	}
	return list
}

func Encode(list []string) string {
	if list == nil {
		list = Clear()
	}
	b, _ := json.Marshal(list) // a []string always marshals
	return string(b)
}

// Cache is the recent searches list persisted in a core.KVStore, written through on every change.
type Cache struct {
	store core.KVStore
	log   core.Logger
}

func NewCache(store core.KVStore, logger core.Logger) *Cache {
	return &Cache{store: store, log: logger}
}

// Load reads the stored list. A missing or malformed slot reads as empty.
func (c *Cache) Load(ctx context.Context) ([]string, error) {
	raw, err := c.store.Get(ctx, StorageKey)
	if err != nil {
		if errors.Cause(err) == core.ErrKeyNotFound {
			return Clear(), nil
		}
		return nil, errors.Wrap(err, "loading recent searches")
	}

	list := Decode(raw)
	if len(list) == 0 && raw != "[]" {
		c.log.Debug("recent searches slot reset", map[string]interface{}{"raw": raw})
	}
	return list, nil
}

// Push records a successful search and returns the updated list.
func (c *Cache) Push(ctx context.Context, name string) ([]string, error) {
	list, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	list = Push(list, name)
	if err = c.store.Set(ctx, StorageKey, Encode(list)); err != nil {
		return nil, errors.Wrap(err, "saving recent searches")
	}
	return list, nil
}

// Clear empties the list and removes the slot.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, StorageKey); err != nil {
		return errors.Wrap(err, "clearing recent searches")
	}
	return nil
}
