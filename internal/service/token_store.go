package service

import (
	"context"
	"fmt"
	"time"

	"carelink-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore tracks issued token ids so logout and refresh can revoke them.
type TokenStore interface {
	Store(ctx context.Context, tokenType jwt.TokenType, subjectID uuid.UUID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenType jwt.TokenType, subjectID uuid.UUID, tokenID string) (bool, error)
	Delete(ctx context.Context, tokenType jwt.TokenType, subjectID uuid.UUID, tokenID string) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

// tokenKey renders access_token:<subject>:<token id> or refresh_token:...
func tokenKey(tokenType jwt.TokenType, subjectID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, subjectID.String(), tokenID)
}

func (s *redisTokenStore) Store(ctx context.Context, tokenType jwt.TokenType, subjectID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(tokenType, subjectID, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, subjectID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(tokenType, subjectID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, tokenType jwt.TokenType, subjectID uuid.UUID, tokenID string) error {
	return s.client.Del(ctx, tokenKey(tokenType, subjectID, tokenID)).Err()
}
