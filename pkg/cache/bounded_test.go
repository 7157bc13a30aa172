package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/duccv/bank-web/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounded_LRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(LRU, 2, time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	_, ok := c.Get("a")
	require.True(t, ok)
	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c"}, c.Keys())
}

func TestBounded_FIFOIgnoresReads(t *testing.T) {
	c := New(FIFO, 2, time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Size())
}

func TestBounded_Expiry(t *testing.T) {
	c := New(LRU, 10, time.Minute)
	defer c.Stop()

	c.SetWithTTL("short", "v", time.Millisecond)
	c.SetWithTTL("forever", "v", 0)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("forever")
	assert.True(t, ok)
	assert.Equal(t, 0, c.removeExpired(time.Now()))
}

func TestBounded_DeleteClearStop(t *testing.T) {
	c := New(LRU, 0, 0)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	assert.Equal(t, 1, c.Size())
	c.Clear()
	assert.Equal(t, 0, c.Size())
	c.Stop()
	c.Stop()
}

func TestNewCache_Policy(t *testing.T) {
	c := NewCache(config.CacheConfig{Type: "FIFO", Capacity: 3, DefaultTTL: 1})
	defer c.Stop()

	assert.Equal(t, FIFO, c.(*Bounded).policy)
	assert.Equal(t, 3, c.MaxSize())
	assert.Equal(t, LRU, ParsePolicy("whatever"))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), config.RedisConfig{Type: "NORMAL", Addrs: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), config.RedisConfig{Type: "CLUSTER"})
	require.Error(t, err)
}

func TestGetOrLoad_FillsLayersAndSharesLoads(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), config.RedisConfig{Addrs: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	mem := New(LRU, 10, time.Minute)
	defer mem.Stop()
	l := NewLayered(mem, time.Minute, WithRedis(client, time.Minute))

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(ctx context.Context) (bool, error) {
		calls.Add(1)
		<-release
		return true, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := GetOrLoad(context.Background(), l, "admin:u1", load)
			assert.NoError(t, err)
			assert.True(t, v)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	raw, err := mr.Get("admin:u1")
	require.NoError(t, err)
	assert.Equal(t, "true", raw)

	// memory miss falls back to redis without calling the loader
	mem.Clear()
	v, err := GetOrLoad(context.Background(), l, "admin:u1", func(context.Context) (bool, error) {
		return false, errors.New("loader must not run")
	})
	require.NoError(t, err)
	assert.True(t, v)
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	mem := New(LRU, 10, time.Minute)
	defer mem.Stop()
	l := NewLayered(mem, time.Minute)

	boom := errors.New("boom")
	_, err := GetOrLoad(context.Background(), l, "k", func(context.Context) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, mem.Size())

	v, err := GetOrLoad(context.Background(), l, "k", func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	l.Invalidate(context.Background(), "k")
	assert.Equal(t, 0, mem.Size())
}
