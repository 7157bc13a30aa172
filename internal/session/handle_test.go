package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	Store
	err error
}

func (f failingStore) Save(context.Context, string, *Session) error { return f.err }

func newHandle(t *testing.T) (*Handle, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(10, time.Hour)
	t.Cleanup(store.Close)

	h, err := Open(context.Background(), store, NewID())
	require.NoError(t, err)
	return h, store
}

func TestOpen_MissingSessionIsEmpty(t *testing.T) {
	h, _ := newHandle(t)

	assert.False(t, h.HasAccessToken())
	assert.True(t, h.Tokens().Empty())
	assert.True(t, ValidID(h.ID()))
	assert.False(t, ValidID("not-a-session"))
}

func TestHandle_BeginRotateClear(t *testing.T) {
	ctx := context.Background()
	h, store := newHandle(t)

	require.NoError(t, h.SetTheme(ctx, "dark"))
	require.NoError(t, h.Begin(ctx, Tokens{Access: "a1", Refresh: "r1"}, "42"))
	require.NoError(t, h.Rotate(ctx, Tokens{Access: "a2", Refresh: "r2"}))

	stored, err := store.Load(ctx, h.ID())
	require.NoError(t, err)
	assert.Equal(t, "a2", stored.AccessToken)
	assert.Equal(t, "r2", stored.RefreshToken)
	assert.Equal(t, "42", stored.UserID)

	require.NoError(t, h.Clear(ctx))
	require.NoError(t, h.Clear(ctx))

	stored, err = store.Load(ctx, h.ID())
	require.NoError(t, err)
	assert.Empty(t, stored.AccessToken)
	assert.Empty(t, stored.RefreshToken)
	assert.Empty(t, stored.UserID)
	assert.Equal(t, "dark", stored.Theme)
}

func TestHandle_ClearOnEmptySessionWritesNothing(t *testing.T) {
	h, store := newHandle(t)

	require.NoError(t, h.Clear(context.Background()))

	_, err := store.Load(context.Background(), h.ID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandle_LatestSeesOtherHandles(t *testing.T) {
	ctx := context.Background()
	h, store := newHandle(t)
	require.NoError(t, h.Begin(ctx, Tokens{Access: "a1", Refresh: "r1"}, "1"))

	other, err := Open(ctx, store, h.ID())
	require.NoError(t, err)
	require.NoError(t, other.Rotate(ctx, Tokens{Access: "a2", Refresh: "r2"}))

	assert.Equal(t, "a1", h.Tokens().Access)
	latest, err := h.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, Tokens{Access: "a2", Refresh: "r2"}, latest)
	assert.Equal(t, "a2", h.Tokens().Access)
}

func TestHandle_StaleHandleKeepsLogout(t *testing.T) {
	ctx := context.Background()
	h, store := newHandle(t)
	require.NoError(t, h.Begin(ctx, Tokens{Access: "a1", Refresh: "r1"}, "42"))

	upload, err := Open(ctx, store, h.ID())
	require.NoError(t, err)
	logout, err := Open(ctx, store, h.ID())
	require.NoError(t, err)
	require.NoError(t, logout.Clear(ctx))

	require.NoError(t, upload.SetReloadFlag(ctx, ReloadOpenAskYourCard))
	require.NoError(t, upload.SetTheme(ctx, "dark"))

	stored, err := store.Load(ctx, h.ID())
	require.NoError(t, err)
	assert.True(t, stored.Tokens().Empty())
	assert.Empty(t, stored.UserID)
	assert.True(t, stored.ReloadOpenAskYourCard)
	assert.Equal(t, "dark", stored.Theme)
	assert.False(t, upload.HasAccessToken())
}

func TestHandle_RotateAfterClearStaysCleared(t *testing.T) {
	ctx := context.Background()
	h, store := newHandle(t)
	require.NoError(t, h.Begin(ctx, Tokens{Access: "a1", Refresh: "r1"}, "42"))

	other, err := Open(ctx, store, h.ID())
	require.NoError(t, err)
	require.NoError(t, other.Clear(ctx))
	require.NoError(t, h.Rotate(ctx, Tokens{Access: "a2", Refresh: "r2"}))

	stored, err := store.Load(ctx, h.ID())
	require.NoError(t, err)
	assert.True(t, stored.Tokens().Empty())
}

func TestHandle_ConcurrentWritersKeepEachOthersFields(t *testing.T) {
	ctx := context.Background()
	h, store := newHandle(t)
	require.NoError(t, h.Begin(ctx, Tokens{Access: "a1", Refresh: "r1"}, "42"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		other, err := Open(ctx, store, h.ID())
		require.NoError(t, err)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				assert.NoError(t, other.SetTheme(ctx, "dark"))
			case 1:
				assert.NoError(t, other.SetReloadFlag(ctx, ReloadOpenViewCard))
			default:
				assert.NoError(t, other.SetUserID(ctx, "42"))
			}
		}(i)
	}
	wg.Wait()

	stored, err := store.Load(ctx, h.ID())
	require.NoError(t, err)
	assert.Equal(t, Tokens{Access: "a1", Refresh: "r1"}, stored.Tokens())
	assert.Equal(t, "dark", stored.Theme)
	assert.True(t, stored.ReloadOpenViewCard)
}

func TestHandle_ReloadFlagsAreOneShot(t *testing.T) {
	ctx := context.Background()
	h, _ := newHandle(t)

	require.NoError(t, h.SetReloadFlag(ctx, ReloadOpenViewCard))
	view, ask, err := h.ConsumeReloadFlags(ctx)
	require.NoError(t, err)
	assert.True(t, view)
	assert.False(t, ask)

	view, ask, err = h.ConsumeReloadFlags(ctx)
	require.NoError(t, err)
	assert.False(t, view)
	assert.False(t, ask)
}

func TestHandle_FailedSaveKeepsCache(t *testing.T) {
	boom := errors.New("store down")
	store := NewMemoryStore(10, time.Hour)
	defer store.Close()

	h, err := Open(context.Background(), failingStore{Store: store, err: boom}, NewID())
	require.NoError(t, err)

	err = h.Begin(context.Background(), Tokens{Access: "a"}, "1")
	require.ErrorIs(t, err, boom)
	assert.False(t, h.HasAccessToken())
}

func TestHandle_Destroy(t *testing.T) {
	ctx := context.Background()
	h, store := newHandle(t)
	require.NoError(t, h.Begin(ctx, Tokens{Access: "a"}, "1"))

	require.NoError(t, h.Destroy(ctx))
	_, err := store.Load(ctx, h.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, h.UserID())
}

func TestContext(t *testing.T) {
	h, _ := newHandle(t)
	ctx := NewContext(context.Background(), h)

	assert.Same(t, h, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}
