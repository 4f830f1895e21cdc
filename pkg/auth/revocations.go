package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "bookswap:revoked:"

// Revocations records access tokens that were logged out before they expired.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevocations keeps one key per revoked token that expires together with
// the token.
type RedisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client}
}

func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	err := r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
	return errors.WithStack(err)
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, errors.WithStack(err)
	}
	return n > 0, nil
}

type nopRevocations struct{}

func (nopRevocations) Revoke(context.Context, string, time.Time) error { return nil }

func (nopRevocations) IsRevoked(context.Context, string) (bool, error) { return false, nil }
