package cart

import "context"

// Store persists cart contents keyed by session ID. The cart lives and dies
// with its session; it is never written to the relational store.
type Store interface {
	Get(ctx context.Context, sessionID string) (Items, error)
	Save(ctx context.Context, sessionID string, items Items) error
	Clear(ctx context.Context, sessionID string) error
}
