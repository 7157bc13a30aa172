package session

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"
)

// writes to the same session id within one process take turns
var idLocks [64]sync.Mutex

func lockID(id string) *sync.Mutex {
	f := fnv.New32a()
	_, _ = f.Write([]byte(id))
	return &idLocks[f.Sum32()%uint32(len(idLocks))]
}

// Handle is the session of one request: a cached copy of the stored session
// plus write-through mutators. It satisfies the token store the backend
// interceptor needs.
type Handle struct {
	store Store
	id    string

	mu   sync.Mutex
	data *Session
}

// Open loads the session id from store. A missing session yields an empty handle.
func Open(ctx context.Context, store Store, id string) (*Handle, error) {
	s, err := store.Load(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		s = &Session{}
	case err != nil:
		return nil, err
	}
	return &Handle{store: store, id: id, data: s}, nil
}

func (h *Handle) ID() string {
	return h.id
}

// Snapshot returns a copy of the cached session.
func (h *Handle) Snapshot() Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return *h.data
}

func (h *Handle) Tokens() Tokens {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data.Tokens()
}

func (h *Handle) HasAccessToken() bool {
	return h.Tokens().Access != ""
}

func (h *Handle) UserID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data.UserID
}

// update re-reads the stored session, applies fn to it and persists the
// result. fn sees the stored state, never the cached copy. The cached copy
// only takes the new state once the store accepted the write.
func (h *Handle) update(ctx context.Context, fn func(s *Session) bool) error {
	l := lockID(h.id)
	l.Lock()
	defer l.Unlock()
	h.mu.Lock()
	defer h.mu.Unlock()

	current, err := h.store.Load(ctx, h.id)
	switch {
	case errors.Is(err, ErrNotFound):
		current = &Session{}
	case err != nil:
		return err
	}

	next := current.clone()
	if !fn(next) {
		h.data = current
		return nil
	}
	next.UpdatedAt = time.Now().UTC()
	if err := h.store.Save(ctx, h.id, next); err != nil {
		return err
	}
	h.data = next
	return nil
}

// Begin records a fresh login, replacing any previous credentials.
func (h *Handle) Begin(ctx context.Context, tokens Tokens, userID string) error {
	return h.update(ctx, func(s *Session) bool {
		s.AccessToken = tokens.Access
		s.RefreshToken = tokens.Refresh
		s.UserID = userID
		return true
	})
}

// SetUserID stores the resolved user id.
func (h *Handle) SetUserID(ctx context.Context, userID string) error {
	return h.update(ctx, func(s *Session) bool {
		if s.UserID == userID {
			return false
		}
		s.UserID = userID
		return true
	})
}

// Rotate replaces the token pair after a refresh; the user id is kept.
// Rotating a session that was cleared meanwhile leaves it cleared.
func (h *Handle) Rotate(ctx context.Context, tokens Tokens) error {
	return h.update(ctx, func(s *Session) bool {
		if s.RefreshToken == "" {
			return false
		}
		s.AccessToken = tokens.Access
		s.RefreshToken = tokens.Refresh
		return true
	})
}

// Clear removes the access token, refresh token and user id. Theme and reload
// flags survive. Clearing an already empty session is a no-op.
func (h *Handle) Clear(ctx context.Context) error {
	return h.update(ctx, func(s *Session) bool {
		if s.AccessToken == "" && s.RefreshToken == "" && s.UserID == "" {
			return false
		}
		s.AccessToken, s.RefreshToken, s.UserID = "", "", ""
		return true
	})
}

// Latest re-reads the token pair from the store, picking up rotations made
// by concurrent requests of the same session.
func (h *Handle) Latest(ctx context.Context) (Tokens, error) {
	s, err := h.store.Load(ctx, h.id)
	switch {
	case errors.Is(err, ErrNotFound):
		s = &Session{}
	case err != nil:
		return Tokens{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.data = s
	return s.Tokens(), nil
}

func (h *Handle) Theme() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data.Theme
}

func (h *Handle) SetTheme(ctx context.Context, theme string) error {
	return h.update(ctx, func(s *Session) bool {
		if s.Theme == theme {
			return false
		}
		s.Theme = theme
		return true
	})
}

// SetReloadFlag arms a one-shot dialog marker.
func (h *Handle) SetReloadFlag(ctx context.Context, flag ReloadFlag) error {
	return h.update(ctx, func(s *Session) bool {
		switch flag {
		case ReloadOpenViewCard:
			s.ReloadOpenViewCard = true
		case ReloadOpenAskYourCard:
			s.ReloadOpenAskYourCard = true
		default:
			return false
		}
		return true
	})
}

// ConsumeReloadFlags returns the armed markers and disarms them.
func (h *Handle) ConsumeReloadFlags(ctx context.Context) (viewCard, askCard bool, err error) {
	err = h.update(ctx, func(s *Session) bool {
		viewCard, askCard = s.ReloadOpenViewCard, s.ReloadOpenAskYourCard
		if !viewCard && !askCard {
			return false
		}
		s.ReloadOpenViewCard, s.ReloadOpenAskYourCard = false, false
		return true
	})
	if err != nil {
		return false, false, err
	}
	return viewCard, askCard, nil
}

// Destroy deletes the stored session entirely, theme included.
func (h *Handle) Destroy(ctx context.Context) error {
	l := lockID(h.id)
	l.Lock()
	defer l.Unlock()
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Delete(ctx, h.id); err != nil {
		return err
	}
	h.data = &Session{}
	return nil
}
