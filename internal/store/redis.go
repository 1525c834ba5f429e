// Package store persists introspected beans as Redis hashes, one field per
// readable property.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cast"

	"github.com/conduit-lang/beans/internal/binding"
	"github.com/conduit-lang/beans/internal/codec"
	"github.com/conduit-lang/beans/runtime/introspection"
)

// DefaultKeyPrefix is used when no prefix is configured
const DefaultKeyPrefix = "beans:"

// ErrNotFound is returned when no bean is stored under an id
var ErrNotFound = errors.New("bean not found")

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	// Addr is the Redis server address (host:port)
	Addr string

	// Password is the Redis password (empty if no auth)
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix is the prefix for all bean keys
	KeyPrefix string

	// TTL expires stored beans; zero keeps them
	TTL time.Duration
}

// DefaultRedisConfig returns default Redis configuration
func DefaultRedisConfig(addr string) *RedisConfig {
	return &RedisConfig{
		Addr:      addr,
		KeyPrefix: DefaultKeyPrefix,
	}
}

// RedisStore is a Redis-backed bean store
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	codec  *codec.Codec
	binder *binding.Binder
}

// NewRedisStore connects to Redis. A nil codec or binder uses the default
// registry.
func NewRedisStore(config *RedisConfig, c *codec.Codec, binder *binding.Binder) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,

		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	s := NewRedisStoreFromClient(client, config.KeyPrefix, c, binder)
	s.ttl = config.TTL
	return s
}

// NewRedisStoreFromClient creates a store from an existing client
func NewRedisStoreFromClient(client *redis.Client, keyPrefix string, c *codec.Codec, binder *binding.Binder) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if binder == nil {
		binder = binding.NewBinder(nil)
	}
	if c == nil {
		c = codec.New(binder.Registry, binder)
	}
	return &RedisStore{
		client: client,
		prefix: keyPrefix,
		codec:  c,
		binder: binder,
	}
}

// Key returns the Redis key of a bean: prefix + type name + ":" + id
func (s *RedisStore) Key(in *introspection.Introspection, id string) string {
	return s.prefix + in.Name() + ":" + id
}

// Save replaces the hash stored for id with the readable properties of bean.
// Nil properties are not stored.
func (s *RedisStore) Save(ctx context.Context, id string, in *introspection.Introspection, bean any) error {
	m, err := s.codec.ToMap(in, bean)
	if err != nil {
		return fmt.Errorf("encode %s: %w", in.Name(), err)
	}

	fields := make(map[string]any, len(m))
	for name, v := range m {
		if v == nil {
			continue
		}
		encoded, err := flatten(v)
		if err != nil {
			return fmt.Errorf("encode %s.%s: %w", in.Name(), name, err)
		}
		fields[name] = encoded
	}

	key := s.Key(in, id)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save error: %w", err)
	}
	return nil
}

// Load reads the bean stored under id and binds it into a new instance
func (s *RedisStore) Load(ctx context.Context, id string, in *introspection.Introspection) (any, error) {
	fields, err := s.client.HGetAll(ctx, s.Key(in, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall error: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	types := make(map[string]reflect.Type, len(fields))
	for _, p := range in.Properties() {
		types[codec.Name(p)] = p.Type()
	}

	values := make(map[string]any, len(fields))
	for name, raw := range fields {
		v, err := unflatten(raw, types[name])
		if err != nil {
			return nil, fmt.Errorf("decode %s.%s: %w", in.Name(), name, err)
		}
		values[name] = v
	}
	return s.binder.Bind(in, values)
}

// Delete removes the bean stored under id
func (s *RedisStore) Delete(ctx context.Context, id string, in *introspection.Introspection) error {
	if err := s.client.Del(ctx, s.Key(in, id)).Err(); err != nil {
		return fmt.Errorf("redis del error: %w", err)
	}
	return nil
}

// Exists reports whether a bean is stored under id
func (s *RedisStore) Exists(ctx context.Context, id string, in *introspection.Introspection) (bool, error) {
	n, err := s.client.Exists(ctx, s.Key(in, id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists error: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// flatten renders scalars as strings and everything else as JSON
func flatten(v any) (string, error) {
	if b, ok := v.([]byte); ok {
		return string(b), nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		data, err := json.Marshal(v)
		return string(data), err
	}
	return cast.ToStringE(v)
}

// unflatten reverses flatten for a property of type t
func unflatten(raw string, t reflect.Type) (any, error) {
	if t == nil {
		return raw, nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		// Byte sequences (uuid.UUID included) and times are stored as text
		if (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() == reflect.Uint8 {
			return raw, nil
		}
		if t == reflect.TypeFor[time.Time]() {
			return raw, nil
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return raw, nil
}
