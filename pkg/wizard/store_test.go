package wizard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/laundryhub/pkg/repository"
)

// fakeCache holds JSON blobs in memory and records the last TTL it was given.
type fakeCache struct {
	data    map[string][]byte
	lastTTL time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	f.lastTTL = expiration
	return nil
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	b, ok := f.data[key]
	if !ok {
		return repository.ErrNotFound
	}
	return json.Unmarshal(b, dest)
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func TestStoreRoundTrip(t *testing.T) {
	cache := newFakeCache()
	store := NewStore(cache, time.Hour)
	ctx := context.Background()

	draft := NewDraft("cust-1")
	draft.ServiceID = "wash-iron"
	require.NoError(t, store.Save(ctx, draft))
	assert.Equal(t, time.Hour, cache.lastTTL)

	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
	assert.Equal(t, "cust-1", got.CustomerID)
	assert.Equal(t, "wash-iron", got.ServiceID)
	require.NotNil(t, got.Cart)
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore(newFakeCache(), time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestStoreDelete(t *testing.T) {
	cache := newFakeCache()
	store := NewStore(cache, time.Hour)
	ctx := context.Background()

	draft := NewDraft("cust-1")
	require.NoError(t, store.Save(ctx, draft))
	require.NoError(t, store.Delete(ctx, draft.ID))

	_, err := store.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
