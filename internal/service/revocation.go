package service

import (
	"context"
	"time"

	"taskboard/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// RevocationList records logged-out token ids in Redis until they expire.
// With a nil client every method is a no-op and nothing is ever revoked.
type RevocationList struct {
	client *redis.Client
}

func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}

func (l *RevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if l == nil || l.client == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

// IsRevoked fails open: a Redis error is logged and the token accepted.
func (l *RevocationList) IsRevoked(ctx context.Context, jti string) bool {
	if l == nil || l.client == nil || jti == "" {
		return false
	}
	n, err := l.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		logger.Warn("revocation lookup failed", "error", err)
		return false
	}
	return n > 0
}
