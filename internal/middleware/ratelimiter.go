package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/tastebase/backend-go/internal/config"
)

// RateLimiter throttles the credential endpoints using Redis
type RateLimiter interface {
	// Allow reports whether the client identified by key may make another
	// attempt inside the current one-minute window.
	Allow(ctx context.Context, key string) (bool, error)

	// Close closes the Redis connection
	Close() error
}

type redisRateLimiter struct {
	client *redis.Client
	limit  int64
	logger *slog.Logger
}

// NewRateLimiter creates a new Redis-based rate limiter
func NewRateLimiter(cfg *config.Config, logger *slog.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("❌ [RateLimiter] Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [RateLimiter] Connected to Redis",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
	)

	return &redisRateLimiter{
		client: client,
		limit:  cfg.LoginRateLimit,
		logger: logger,
	}, nil
}

// windowKey generates the Redis key for the current fixed window
// Format: rate:auth:{client}:{YYYY-MM-DDTHH:MM}
func windowKey(client string) string {
	window := time.Now().UTC().Format("2006-01-02T15:04")
	return fmt.Sprintf("rate:auth:%s:%s", client, window)
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	// If limit is 0 or negative, unlimited
	if r.limit <= 0 {
		return true, nil
	}

	redisKey := windowKey(key)

	pipe := r.client.Pipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to count attempt", "error", err, "client", key)
		// On error, allow the request but log it
		return true, err
	}

	return count.Val() <= r.limit, nil
}

func (r *redisRateLimiter) Close() error {
	return r.client.Close()
}

// NoOpRateLimiter is a rate limiter that always allows requests
// Used when Redis is not available
type NoOpRateLimiter struct {
	logger *slog.Logger
}

// NewNoOpRateLimiter creates a no-op rate limiter
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter - rate limiting is disabled")
	return &NoOpRateLimiter{logger: logger}
}

func (r *NoOpRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (r *NoOpRateLimiter) Close() error {
	return nil
}

// Throttle wraps a RateLimiter as gin middleware keyed by client IP
func Throttle(limiter RateLimiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis trouble never blocks logins.
			c.Next()
			return
		}
		if !allowed {
			logger.Warn("⚠️ [RateLimiter] Client throttled", "client", c.ClientIP())
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
