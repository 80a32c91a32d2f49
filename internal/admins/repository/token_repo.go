package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/civicspark/civic-site/internal/admins/domain"
)

const tokenKeyPrefix = "auth:token:" // auth:token:{token} -> admin id

// TokenRepository stores issued credential tokens in Redis. Each token
// expires on its own after the configured TTL.
type TokenRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenRepository(client *redis.Client, ttl time.Duration) *TokenRepository {
	return &TokenRepository{client: client, ttl: ttl}
}

// Issue creates a new opaque token bound to adminID.
func (r *TokenRepository) Issue(ctx context.Context, adminID string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, r.key(token), adminID, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Resolve returns the admin id a live token belongs to.
func (r *TokenRepository) Resolve(ctx context.Context, token string) (string, error) {
	adminID, err := r.client.Get(ctx, r.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}
	return adminID, nil
}

func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *TokenRepository) key(token string) string {
	return tokenKeyPrefix + token
}

// NewToken returns 32 random bytes, hex encoded.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
