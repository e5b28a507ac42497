package middleware

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
)

// CacheStore 响应缓存的存储
// 每次 Purge 递增代数；Set 只在代数未变时生效，清除前读到的旧数据不会被写回
type CacheStore interface {
	Generation(ctx context.Context) uint64
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, content []byte, ttl time.Duration, generation uint64)
	Purge(ctx context.Context)
	Stats(ctx context.Context) map[string]interface{}
}

var (
	cacheStore   CacheStore = NewMemoryCacheStore()
	cacheStoreMu sync.RWMutex
)

// SetCacheStore 替换全局缓存存储
func SetCacheStore(store CacheStore) {
	cacheStoreMu.Lock()
	defer cacheStoreMu.Unlock()
	cacheStore = store
}

func currentCacheStore() CacheStore {
	cacheStoreMu.RLock()
	defer cacheStoreMu.RUnlock()
	return cacheStore
}

// 缓存条目
type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

// MemoryCacheStore 进程内缓存
type MemoryCacheStore struct {
	sync.RWMutex
	items      map[string]cacheEntry
	generation uint64
	lastSweep  time.Time
}

// NewMemoryCacheStore 创建进程内缓存
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{
		items:     make(map[string]cacheEntry),
		lastSweep: time.Now(),
	}
}

// Generation 当前清除代数
func (m *MemoryCacheStore) Generation(_ context.Context) uint64 {
	m.RLock()
	defer m.RUnlock()
	return m.generation
}

// Get 读取未过期的缓存
func (m *MemoryCacheStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.RLock()
	entry, found := m.items[key]
	m.RUnlock()

	if !found || !entry.Expiration.After(time.Now()) {
		return nil, false
	}
	return entry.Content, true
}

// Set 写入缓存，顺便清理过期条目；代数已变化时丢弃
func (m *MemoryCacheStore) Set(_ context.Context, key string, content []byte, ttl time.Duration, generation uint64) {
	now := time.Now()

	m.Lock()
	defer m.Unlock()

	if generation != m.generation {
		return
	}
	m.items[key] = cacheEntry{
		Content:    content,
		Expiration: now.Add(ttl),
	}

	if now.Sub(m.lastSweep) > time.Minute {
		for k, entry := range m.items {
			if entry.Expiration.Before(now) {
				delete(m.items, k)
			}
		}
		m.lastSweep = now
	}
}

// Purge 清除所有缓存
func (m *MemoryCacheStore) Purge(_ context.Context) {
	m.Lock()
	m.items = make(map[string]cacheEntry)
	m.generation++
	m.Unlock()
}

// Stats 获取缓存统计信息
func (m *MemoryCacheStore) Stats(_ context.Context) map[string]interface{} {
	m.RLock()
	defer m.RUnlock()

	now := time.Now()
	items := make([]map[string]interface{}, 0, len(m.items))
	for key, entry := range m.items {
		items = append(items, map[string]interface{}{
			"key":        key,
			"size":       len(entry.Content),
			"expiration": entry.Expiration.Format(time.RFC3339),
			"expired":    entry.Expiration.Before(now),
		})
	}

	return map[string]interface{}{
		"store":       "memory",
		"generation":  m.generation,
		"total_items": len(m.items),
		"items":       items,
	}
}

// Redis 中响应缓存键的前缀和清除代数计数器，缓存键形如 http_cache:<代数>:<key>
const (
	RedisCacheKeyPrefix     = "http_cache:"
	RedisCacheGenerationKey = "http_cache_generation"
)

// RedisCacheStore 基于 Redis 的共享缓存，多实例部署时使用
type RedisCacheStore struct {
	Redis services.InterfaceRedisService
}

// NewRedisCacheStore 创建 Redis 缓存
func NewRedisCacheStore(redis services.InterfaceRedisService) *RedisCacheStore {
	return &RedisCacheStore{Redis: redis}
}

// Generation 读取共享的清除代数，不存在时为 0
func (r *RedisCacheStore) Generation(ctx context.Context) uint64 {
	raw, err := r.Redis.GetBytes(ctx, RedisCacheGenerationKey)
	if err != nil {
		if !errors.Is(err, services.ErrCacheMiss) {
			Logger.Warning("读取Redis缓存代数失败: %v", err)
		}
		return 0
	}
	generation, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	return generation
}

func redisCacheKey(generation uint64, key string) string {
	return RedisCacheKeyPrefix + strconv.FormatUint(generation, 10) + ":" + key
}

// Get 读取当前代数下的缓存，Redis 不可用时视为未命中
func (r *RedisCacheStore) Get(ctx context.Context, key string) ([]byte, bool) {
	content, err := r.Redis.GetBytes(ctx, redisCacheKey(r.Generation(ctx), key))
	if err != nil {
		if !errors.Is(err, services.ErrCacheMiss) {
			Logger.Warning("读取Redis缓存失败: %v", err)
		}
		return nil, false
	}
	return content, true
}

// Set 写入读取时所在代数的命名空间，过期代数的写入不会再被读到
func (r *RedisCacheStore) Set(ctx context.Context, key string, content []byte, ttl time.Duration, generation uint64) {
	if generation != r.Generation(ctx) {
		return
	}
	if err := r.Redis.SetBytes(ctx, redisCacheKey(generation, key), content, ttl); err != nil {
		Logger.Warning("写入Redis缓存失败: %v", err)
	}
}

// Purge 递增代数并删除所有响应缓存键
func (r *RedisCacheStore) Purge(ctx context.Context) {
	if _, err := r.Redis.Incr(ctx, RedisCacheGenerationKey); err != nil {
		Logger.Warning("递增Redis缓存代数失败: %v", err)
	}
	if _, err := r.Redis.DeleteByPrefix(ctx, RedisCacheKeyPrefix); err != nil {
		Logger.Warning("清除Redis缓存失败: %v", err)
	}
}

// Stats 获取缓存统计信息
func (r *RedisCacheStore) Stats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{"store": "redis"}
	count, err := r.Redis.CountByPrefix(ctx, RedisCacheKeyPrefix)
	if err != nil {
		stats["error"] = err.Error()
		return stats
	}
	stats["total_items"] = count
	return stats
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Expiration time.Duration             // 缓存过期时间
	Methods    []string                  // 需要缓存的HTTP方法
	KeyFunc    func(*gin.Context) string // 自定义缓存键生成函数
	Skip       func(*gin.Context) bool   // 返回 true 时不读写缓存
}

// DefaultCacheConfig 默认缓存配置
var DefaultCacheConfig = CacheConfig{
	Expiration: 30 * time.Second,
	Methods:    []string{http.MethodGet},
	KeyFunc:    defaultKeyFunc,
}

// 默认缓存键生成函数: 路径 + 排序后的查询参数
func defaultKeyFunc(c *gin.Context) string {
	path := c.Request.URL.Path

	queryParams := c.Request.URL.Query()
	queryKeys := make([]string, 0, len(queryParams))
	for key := range queryParams {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)

	var b strings.Builder
	b.WriteString(path)
	b.WriteString("?")
	for _, key := range queryKeys {
		values := append([]string(nil), queryParams[key]...)
		sort.Strings(values)
		for _, value := range values {
			b.WriteString(key + "=" + value + "&")
		}
	}

	// 使用MD5哈希缓存键
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Cache 创建缓存中间件
func Cache(config ...CacheConfig) gin.HandlerFunc {
	var cfg CacheConfig
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultCacheConfig
	}

	// 确保配置有效
	if cfg.Expiration <= 0 {
		cfg.Expiration = DefaultCacheConfig.Expiration
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = DefaultCacheConfig.Methods
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultCacheConfig.KeyFunc
	}

	return func(c *gin.Context) {
		methodAllowed := false
		for _, method := range cfg.Methods {
			if c.Request.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed || (cfg.Skip != nil && cfg.Skip(c)) {
			c.Next()
			return
		}

		store := currentCacheStore()
		ctx := c.Request.Context()
		key := cfg.KeyFunc(c)
		generation := store.Generation(ctx)

		if content, found := store.Get(ctx, key); found {
			// 缓存命中，直接返回缓存的响应
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", content)
			c.Abort()
			return
		}

		// 缓存未命中，捕获响应
		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		// 只缓存200响应
		if writer.Status() == http.StatusOK {
			store.Set(ctx, key, writer.body.Bytes(), cfg.Expiration, generation)
		}
	}
}

// PurgeCache 清除所有缓存
func PurgeCache(ctx context.Context) {
	currentCacheStore().Purge(ctx)
}

// CacheStats 获取缓存统计信息
func CacheStats(ctx context.Context) map[string]interface{} {
	return currentCacheStore().Stats(ctx)
}

// 自定义响应写入器，用于捕获响应内容
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 重写Write方法，同时写入原始响应和缓冲区
func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// WriteString 重写WriteString方法，同时写入原始响应和缓冲区
func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
