package ports

import (
	"context"
	"time"
)

// Cache backs the issued-token store. Implementations must be safe for
// concurrent use; expiry is enforced by the backend (Redis TTL or the local
// cache's sweep).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
