package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
)

// ErrCacheMiss 键不存在
var ErrCacheMiss = errors.New("cache miss")

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	SetBytes(ctx context.Context, key string, value []byte, expiration time.Duration) error
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Incr(ctx context.Context, key string) (int64, error)
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
	}
}

// 1 SetBytes stores raw bytes with expiration
func (s *RedisService) SetBytes(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return s.Client.Set(ctx, key, value, expiration).Err()
}

// 2 GetBytes returns raw bytes, ErrCacheMiss when the key does not exist
func (s *RedisService) GetBytes(ctx context.Context, key string) ([]byte, error) {
	val, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return val, err
}

// 3 Incr atomically increments an integer counter
func (s *RedisService) Incr(ctx context.Context, key string) (int64, error) {
	return s.Client.Incr(ctx, key).Result()
}

// 4 DeleteByPrefix removes every key starting with prefix
func (s *RedisService) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var deleted int64
	iter := s.Client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			n, err := s.Client.Del(ctx, batch...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("scan %s*: %w", prefix, err)
	}
	if len(batch) > 0 {
		n, err := s.Client.Del(ctx, batch...).Result()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}

// 5 CountByPrefix counts keys starting with prefix
func (s *RedisService) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	iter := s.Client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count, iter.Err()
}

// 6 Ping checks the connection
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// 7 Close closes the client
func (s *RedisService) Close() error {
	return s.Client.Close()
}
