package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/beans/internal/samples"
	"github.com/conduit-lang/beans/runtime/introspection"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewRedisStoreFromClient(client, "", nil, nil), mr
}

func TestRedisStore_Key(t *testing.T) {
	s, _ := setupTestRedis(t)
	defer s.Close()

	in := introspection.MustOf[*samples.Point]()
	assert.Equal(t, "beans:"+in.Name()+":p1", s.Key(in, "p1"))
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	s, mr := setupTestRedis(t)
	defer s.Close()
	ctx := context.Background()
	in := introspection.MustOf[*samples.ServerConfig]()

	cfg := &samples.ServerConfig{
		ID:      uuid.MustParse("6f1c1a36-8c1e-4d43-9d8d-0b2a4f1f0e11"),
		Name:    "api",
		Host:    "localhost",
		Port:    8443,
		Timeout: 5 * time.Second,
		TLS:     &samples.TLS{Enabled: true, CertFile: "server.pem"},
		Labels:  map[string]string{"env": "prod"},
	}

	require.NoError(t, s.Save(ctx, "api", in, cfg))

	key := s.Key(in, "api")
	assert.Equal(t, "8443", mr.HGet(key, "port"))
	assert.Equal(t, "5s", mr.HGet(key, "timeout"))
	assert.JSONEq(t, `{"env":"prod"}`, mr.HGet(key, "labels"))
	assert.JSONEq(t, `{"enabled":true,"cert_file":"server.pem","key_file":""}`, mr.HGet(key, "tls"))

	loaded, err := s.Load(ctx, "api", in)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestRedisStore_SaveReplacesAndSkipsNil(t *testing.T) {
	s, mr := setupTestRedis(t)
	defer s.Close()
	ctx := context.Background()
	in := introspection.MustOf[*samples.ServerConfig]()

	first := &samples.ServerConfig{Name: "api", Host: "a", Port: 1, TLS: &samples.TLS{}}
	require.NoError(t, s.Save(ctx, "x", in, first))
	assert.True(t, mr.Exists(s.Key(in, "x")))

	second := &samples.ServerConfig{Name: "api", Host: "b", Port: 2}
	require.NoError(t, s.Save(ctx, "x", in, second))

	keys, err := mr.HKeys(s.Key(in, "x"))
	require.NoError(t, err)
	assert.NotContains(t, keys, "tls")
	assert.NotContains(t, keys, "labels")

	loaded, err := s.Load(ctx, "x", in)
	require.NoError(t, err)
	assert.Nil(t, loaded.(*samples.ServerConfig).TLS)
	assert.Equal(t, "b", loaded.(*samples.ServerConfig).Host)
}

func TestRedisStore_ConstructorBean(t *testing.T) {
	s, _ := setupTestRedis(t)
	defer s.Close()
	ctx := context.Background()
	in := introspection.MustOf[*samples.Account]()

	acct := samples.NewAccount("a-1", "ann")
	acct.Email = "ann@example.com"
	acct.Balance = 250
	acct.Tags = []string{"gold", "early"}
	acct.SetPassword("secret-password")

	require.NoError(t, s.Save(ctx, acct.ID(), in, acct))

	loaded, err := s.Load(ctx, "a-1", in)
	require.NoError(t, err)

	got := loaded.(*samples.Account)
	assert.Equal(t, "a-1", got.ID())
	assert.Equal(t, "ann", got.Owner)
	assert.Equal(t, int64(250), got.Balance)
	assert.Equal(t, []string{"gold", "early"}, got.Tags)
	assert.False(t, got.CheckPassword("secret-password"))
}

func TestRedisStore_LoadNotFound(t *testing.T) {
	s, _ := setupTestRedis(t)
	defer s.Close()

	_, err := s.Load(context.Background(), "missing", introspection.MustOf[*samples.Point]())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_DeleteAndExists(t *testing.T) {
	s, _ := setupTestRedis(t)
	defer s.Close()
	ctx := context.Background()
	in := introspection.MustOf[*samples.Point]()

	require.NoError(t, s.Save(ctx, "p", in, &samples.Point{X: 1, Y: 2}))

	ok, err := s.Exists(ctx, "p", in)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "p", in))

	ok, err = s.Exists(ctx, "p", in)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	config := DefaultRedisConfig(mr.Addr())
	config.TTL = time.Minute
	s := NewRedisStore(config, nil, nil)
	defer s.Close()

	ctx := context.Background()
	in := introspection.MustOf[*samples.Point]()
	require.NoError(t, s.Save(ctx, "p", in, &samples.Point{X: 3, Y: 4}))
	assert.Equal(t, time.Minute, mr.TTL(s.Key(in, "p")))

	mr.FastForward(2 * time.Minute)

	ok, err := s.Exists(ctx, "p", in)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_ClosedServer(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	s := NewRedisStore(DefaultRedisConfig(mr.Addr()), nil, nil)
	defer s.Close()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	in := introspection.MustOf[*samples.Point]()
	assert.Error(t, s.Save(ctx, "p", in, &samples.Point{}))
	_, err = s.Exists(ctx, "p", in)
	assert.Error(t, err)
}

func TestFlatten(t *testing.T) {
	v, err := flatten(42)
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	v, err = flatten([]any{"a", 1})
	require.NoError(t, err)
	assert.Equal(t, `["a",1]`, v)

	raw, err := unflatten(`["a"]`, nil)
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, raw)

	_, err = unflatten(`{`, introspection.MustOf[*samples.ServerConfig]().BeanType())
	assert.Error(t, err)
}
