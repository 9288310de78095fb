package utils

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// GlobalCache 本地 LRU 缓存封装，条目带 TTL
type GlobalCache struct {
	lruCache *lru.Cache[string, CacheItem]
}

var (
	cacheInstance *GlobalCache
	cacheOnce     sync.Once
)

// NewGlobalCache 创建容量为 size 的缓存
func NewGlobalCache(size int) *GlobalCache {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		zap.L().Fatal("Failed to create LRU cache", zap.Int("size", size), zap.Error(err))
	}
	return &GlobalCache{lruCache: l}
}

// GetCache 获取单例缓存实例（容量 500）
func GetCache() *GlobalCache {
	cacheOnce.Do(func() {
		cacheInstance = NewGlobalCache(500)
	})
	return cacheInstance
}

// Set 设置缓存，TTL 为过期时间
func (c *GlobalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *GlobalCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	// 检查过期
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Delete 删除指定缓存
func (c *GlobalCache) Delete(key string) {
	c.lruCache.Remove(key)
}

// Len 当前条目数（含未清理的过期条目）
func (c *GlobalCache) Len() int {
	return c.lruCache.Len()
}
