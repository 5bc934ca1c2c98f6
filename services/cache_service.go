package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
	"vitrine_server/config"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching with connection pooling and retry logic.
// It backs public list caching and the rate limit middleware.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			PoolSize:     cfg.Cache.PoolSize,
			MinIdleConns: cfg.Cache.MinIdleConns,

			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableRedisError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt)
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		if _, err := rand.Read(jitterBytes); err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)

		time.Sleep(time.Duration(backoff/2+jitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

func isRetryableRedisError(err error) bool {
	if err == nil {
		return false
	}

	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic. Missing keys return "".
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	return result, err
}

// Delete removes a key
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// DeletePattern removes every key matching pattern, used to invalidate the
// cached lists of an entity after a write.
func (cs *CacheService) DeletePattern(pattern string) error {
	return cs.withRetry(func() error {
		iter := cs.client.Scan(redisCtx, 0, pattern, 0).Iterator()
		var keys []string
		for iter.Next(redisCtx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return cs.client.Del(redisCtx, keys...).Err()
	}, 3)
}

// getJSON retrieves and unmarshals a cached value, nil on miss
func getJSON[T any](cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(key)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return &out, nil
}

// setJSON marshals and caches a value with TTL
func setJSON[T any](cs *CacheService, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for cache: %w", err)
	}
	return cs.Set(key, data, ttl)
}

// GetCachedList retrieves a cached list response (data plus pagination meta)
// for a public GET, keyed by the full query signature.
func GetCachedList[T any](cs *CacheService, key string) (*T, error) {
	return getJSON[T](cs, key)
}

// SetCachedList caches a list response with the configured list TTL.
func SetCachedList[T any](cs *CacheService, key string, value T) error {
	return setJSON(cs, key, value, cs.config.Cache.ListTTL)
}

// InvalidateEntityLists drops every cached list for an entity family
func (cs *CacheService) InvalidateEntityLists(entity string) {
	if err := cs.DeletePattern(entity + ":list:*"); err != nil {
		cs.logger.Warn("Failed to invalidate cached lists",
			gecho.Field("entity", entity),
			gecho.Field("error", err),
		)
	}
}

// ListCacheKey builds the cache key for a list query signature
func ListCacheKey(entity string, signature string) string {
	return fmt.Sprintf("%s:list:%s", entity, signature)
}

// IncrementRateLimit atomically increments a rate limit counter
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, ttl time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = val

		// Set expiration only on first increment
		if val == 1 {
			return cs.client.Expire(redisCtx, key, ttl).Err()
		}

		return nil
	}, 3)

	return int(result), err
}

// Ping tests the Redis connection
func (cs *CacheService) Ping() error {
	return cs.withRetry(func() error {
		return cs.client.Ping(redisCtx).Err()
	}, 3)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}
