package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T, ttl time.Duration) *PageCache {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, ttl)
}

func TestFetchCachesWithinTTL(t *testing.T) {
	c := setupTestCache(t, time.Minute)
	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte{byte('0' + calls)}, nil
	}

	first, err := c.Fetch(IndexPageKey, render)
	require.NoError(t, err)
	second, err := c.Fetch(IndexPageKey, render)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestClearForcesRender(t *testing.T) {
	c := setupTestCache(t, time.Minute)
	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte{byte('0' + calls)}, nil
	}

	first, err := c.Fetch(IndexPageKey, render)
	require.NoError(t, err)
	require.NoError(t, c.Clear())

	second, err := c.Fetch(IndexPageKey, render)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, calls)
}

func TestInvalidateSingleKey(t *testing.T) {
	c := setupTestCache(t, time.Minute)
	require.NoError(t, c.Set("a", []byte("A")))
	require.NoError(t, c.Set("b", []byte("B")))

	require.NoError(t, c.Invalidate("a"))

	_, ok, err := c.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)

	page, ok, err := c.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("B"), page)
}

func TestEntriesExpire(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a TTL window")
	}
	c := setupTestCache(t, time.Second)
	require.NoError(t, c.Set(IndexPageKey, []byte("stale")))

	time.Sleep(2100 * time.Millisecond)

	_, ok, err := c.Get(IndexPageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFailedRenderIsNotCached(t *testing.T) {
	c := setupTestCache(t, time.Minute)
	boom := errors.New("boom")

	_, err := c.Fetch(IndexPageKey, func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	_, ok, err := c.Get(IndexPageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultTTL(t *testing.T) {
	c := setupTestCache(t, 0)
	assert.Equal(t, DefaultTTL, c.TTL())
}
