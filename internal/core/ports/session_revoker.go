package ports

import (
	"context"
	"time"
)

// SessionRevoker is the logout mechanism: a denylist of token IDs checked on
// every authenticated request. Entries need to live only as long as the token
// they revoke, so Revoke takes the token's remaining TTL.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
