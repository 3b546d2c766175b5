package cache

import (
	"context"
	"fmt"
	"strconv"

	redisv9 "github.com/redis/go-redis/v9"
)

// TokenStore holds the server-side half of every issued bearer token: a
// token-id to user-id binding with no TTL. A token resolves only while its
// binding exists, so deleting the key is how logout revokes a token.
type TokenStore struct {
	client *redisv9.Client
}

func NewTokenStore(client *redisv9.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Save(ctx context.Context, tokenID string, userID uint) error {
	key := s.tokenKey(tokenID)
	if err := s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), 0).Err(); err != nil {
		return fmt.Errorf("redis save token failed: %w", err)
	}
	return nil
}

func (s *TokenStore) Resolve(ctx context.Context, tokenID string) (uint, bool, error) {
	key := s.tokenKey(tokenID)
	raw, err := s.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis resolve token failed: %w", err)
	}

	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse stored token binding failed: %w", err)
	}
	return uint(userID), true, nil
}

// Revoke deletes the binding. Deleting an absent key is a no-op, which keeps
// logout idempotent.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string) error {
	key := s.tokenKey(tokenID)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis revoke token failed: %w", err)
	}
	return nil
}

func (s *TokenStore) tokenKey(tokenID string) string {
	return "auth:token:" + tokenID
}
