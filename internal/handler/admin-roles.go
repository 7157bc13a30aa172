package handler

import (
	"context"

	"github.com/duccv/bank-web/internal/session"
	"github.com/duccv/bank-web/pkg/cache"
)

// AdminRoles caches the role answer of the user service per user.
type AdminRoles struct {
	backends *Backends
	cache    *cache.Layered
}

func NewAdminRoles(backends *Backends, c *cache.Layered) *AdminRoles {
	return &AdminRoles{backends: backends, cache: c}
}

func (a *AdminRoles) IsAdmin(ctx context.Context, h *session.Handle) (bool, error) {
	if h == nil || !h.HasAccessToken() {
		return false, nil
	}
	load := func(ctx context.Context) (bool, error) {
		return a.backends.For(h).IsAdmin(ctx)
	}
	uid := h.UserID()
	if uid == "" {
		return load(ctx)
	}
	return cache.GetOrLoad(ctx, a.cache, adminKey(uid), load)
}

// Forget drops the cached role of userID.
func (a *AdminRoles) Forget(ctx context.Context, userID string) {
	if userID != "" {
		a.cache.Invalidate(ctx, adminKey(userID))
	}
}

func adminKey(userID string) string {
	return "bank:admin:" + userID
}
