package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
)

// 简单的令牌桶限流器
type TokenBucket struct {
	rate       float64    // 每秒填充的令牌数
	capacity   int        // 桶的容量
	tokens     float64    // 当前令牌数
	lastRefill time.Time  // 上次填充时间
	mu         sync.Mutex // 互斥锁
}

// 创建新的令牌桶限流器
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// 尝试获取令牌
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// idleSince 上次使用时间
func (tb *TokenBucket) idleSince() time.Time {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastRefill
}

// RateLimiterConfig 限流器配置
type RateLimiterConfig struct {
	Rate       float64                   // 每秒允许的请求数
	Burst      int                       // 允许的突发请求数
	ExpiryTime time.Duration             // 限流器空闲多久后回收
	LimitType  string                    // 限流类型: "ip", "path", "combined", "custom"
	KeyFunc    func(*gin.Context) string // 自定义键生成函数
}

// DefaultRateLimiterConfig 默认限流器配置
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:       1,                // 每秒1个请求
	Burst:      5,                // 允许5个突发请求
	ExpiryTime: 10 * time.Minute, // 空闲10分钟后回收
	LimitType:  "ip",             // 默认按IP限流
}

// limiterRegistry 每个中间件实例独立的限流器集合
type limiterRegistry struct {
	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	cfg       RateLimiterConfig
	lastSweep time.Time
}

func newLimiterRegistry(cfg RateLimiterConfig) *limiterRegistry {
	return &limiterRegistry{
		buckets:   make(map[string]*TokenBucket),
		cfg:       cfg,
		lastSweep: time.Now(),
	}
}

// get 获取或创建键对应的限流器，并回收空闲的限流器
func (r *limiterRegistry) get(key string) *TokenBucket {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Sub(r.lastSweep) > r.cfg.ExpiryTime {
		for k, bucket := range r.buckets {
			if now.Sub(bucket.idleSince()) > r.cfg.ExpiryTime {
				delete(r.buckets, k)
			}
		}
		r.lastSweep = now
	}

	bucket, exists := r.buckets[key]
	if !exists {
		bucket = NewTokenBucket(r.cfg.Rate, r.cfg.Burst)
		r.buckets[key] = bucket
	}
	return bucket
}

func (r *limiterRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}

// RateLimiter 创建限流中间件
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	var cfg RateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultRateLimiterConfig
	}

	// 确保配置有效
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.ExpiryTime <= 0 {
		cfg.ExpiryTime = DefaultRateLimiterConfig.ExpiryTime
	}
	if cfg.LimitType == "" {
		cfg.LimitType = DefaultRateLimiterConfig.LimitType
	}

	registry := newLimiterRegistry(cfg)

	return func(c *gin.Context) {
		var key string

		// 根据限流类型选择限流键
		switch cfg.LimitType {
		case "path":
			key = c.FullPath()
		case "combined":
			key = c.ClientIP() + ":" + c.FullPath()
		case "custom":
			if cfg.KeyFunc != nil {
				key = cfg.KeyFunc(c)
			} else {
				key = c.ClientIP()
			}
		default:
			key = c.ClientIP()
		}

		if !registry.get(key).Allow() {
			response.Fail(c, code.ErrTooManyRequests, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// IPRateLimiter 按IP限流
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "ip",
	})
}

// PathRateLimiter 按路径限流
func PathRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "path",
	})
}

// CombinedRateLimiter 按IP和路径组合限流
func CombinedRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "combined",
	})
}
