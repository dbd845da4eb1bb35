package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JerishBovas/ScavengerHunt-API/models"
)

// Key and lifetime of the cached public game-list projection.
const (
	gameListKey = "games:public"
	gameListTTL = 5 * time.Minute
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &RedisClient{client: client, ctx: context.Background()}
}

// GetGameList returns the cached public list projection, or (nil, nil) on a
// cache miss.
func (rc *RedisClient) GetGameList() ([]models.GameSummary, error) {
	raw, err := rc.client.Get(rc.ctx, gameListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read game list cache: %w", err)
	}
	var games []models.GameSummary
	if err := json.Unmarshal(raw, &games); err != nil {
		return nil, fmt.Errorf("failed to decode game list cache: %w", err)
	}
	return games, nil
}

// SetGameList stores the public list projection with a TTL.
func (rc *RedisClient) SetGameList(games []models.GameSummary) error {
	raw, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("failed to encode game list cache: %w", err)
	}
	if err := rc.client.Set(rc.ctx, gameListKey, raw, gameListTTL).Err(); err != nil {
		return fmt.Errorf("failed to write game list cache: %w", err)
	}
	return nil
}

// InvalidateGameList drops the cached projection after any write to a Game.
func (rc *RedisClient) InvalidateGameList() error {
	if err := rc.client.Del(rc.ctx, gameListKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate game list cache: %w", err)
	}
	return nil
}
