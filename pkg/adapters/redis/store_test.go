package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/pkg/adapters/redis"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/ports"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunModelStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	doc := &domain.Document{States: []domain.StateRecord{{Name: "Tonic"}}}

	require.NoError(t, store.Save(ctx, "short-lived", doc))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "short-lived")

	// Expire the key in miniredis.
	mr.FastForward(2 * time.Second)
	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)

	// Index pruning compares against the wall clock.
	time.Sleep(1200 * time.Millisecond)
	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "standards", &domain.Document{}))

	assert.True(t, mr.Exists("custom:app:doc:standards"), "expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "expected index with custom prefix to exist")

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"standards"}, names)
}

func TestRedisStore_InvalidDocument(t *testing.T) {
	mr, client := setup(t)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"doc:broken", "{"))

	_, err := redis.NewFromClient(client).Load(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestRedisStore_ModelNamedIndex(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "index", &domain.Document{States: []domain.StateRecord{{Name: "Tonic"}}}))
	require.NoError(t, store.Save(ctx, "standards", &domain.Document{}))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"doc:index"))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "standards"}, names)

	doc, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "Tonic", doc.States[0].Name)
}
