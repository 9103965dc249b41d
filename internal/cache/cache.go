// Package cache wraps the shared Redis client behind structured, typed keys.
// Call sites build a Key from its parts instead of formatting strings ad hoc,
// and invalidation is an explicit Delete of the keys a mutation touched.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Key struct {
	Resource string
	Parts    []string
}

func (k Key) String() string {
	if len(k.Parts) == 0 {
		return k.Resource
	}
	return k.Resource + ":" + strings.Join(k.Parts, ":")
}

func CoverageKey(stationID int64, date string, intervalMinutes int) Key {
	return Key{
		Resource: "coverage",
		Parts:    []string{strconv.FormatInt(stationID, 10), date, strconv.Itoa(intervalMinutes)},
	}
}

// CoveragePrefix covers every cached coverage key of one station, across
// all dates and intervals. Used with DeletePrefix when a mutation changes
// staffing requirements rather than a single day's shifts.
func CoveragePrefix(stationID int64) Key {
	return Key{
		Resource: "coverage",
		Parts:    []string{strconv.FormatInt(stationID, 10)},
	}
}

func RatesKey(base string) Key {
	return Key{Resource: "fx_rates", Parts: []string{base}}
}

func OTPKey(username, purpose string) Key {
	return Key{Resource: "otp", Parts: []string{username, purpose}}
}

type Cache struct {
	rdb       *redis.Client
	opTimeout time.Duration
}

func New(rdb *redis.Client, opTimeout time.Duration) *Cache {
	return &Cache{
		rdb:       rdb,
		opTimeout: opTimeout,
	}
}

func (c *Cache) SetJSON(key Key, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	return c.rdb.Set(ctx, key.String(), data, ttl).Err()
}

// GetJSON decodes the cached value into dest. A miss is not an error: it
// returns (false, nil).
func (c *Cache) GetJSON(key Key, dest any) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	data, err := c.rdb.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) SetString(key Key, value string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	return c.rdb.Set(ctx, key.String(), value, ttl).Err()
}

func (c *Cache) GetString(key Key) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	value, err := c.rdb.Get(ctx, key.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Delete invalidates the given keys. Deleting a key that does not exist is
// fine.
func (c *Cache) Delete(keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	return c.rdb.Del(ctx, names...).Err()
}

// DeletePrefix invalidates every key under the given prefix, found with SCAN
// so a large keyspace does not block Redis.
func (c *Cache) DeletePrefix(prefix Key) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	iter := c.rdb.Scan(ctx, 0, prefix.String()+":*", 100).Iterator()
	names := make([]string, 0)
	for iter.Next(ctx) {
		names = append(names, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	return c.rdb.Del(ctx, names...).Err()
}
