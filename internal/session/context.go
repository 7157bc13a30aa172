package session

import "context"

type ctxKey struct{}

func NewContext(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, ctxKey{}, h)
}

// FromContext returns the request's session handle, or nil outside a session.
func FromContext(ctx context.Context) *Handle {
	h, _ := ctx.Value(ctxKey{}).(*Handle)
	return h
}
