// Where: internal/infra/secrets/timeout.go
// What: Optional deadline around secret fetches.
package secrets

import (
	"context"
	"time"
)

// WithTimeout bounds each call to store. A non-positive timeout returns
// store unchanged, so calls are bounded only by the caller's context.
func WithTimeout(store Store, timeout time.Duration) Store {
	if timeout <= 0 {
		return store
	}
	return StoreFunc(func(ctx context.Context, vault, name string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return store.GetSecret(ctx, vault, name)
	})
}
