package utils

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache 本地 LRU 缓存，每个条目带 TTL
type Cache struct {
	lruCache *lru.Cache[string, CacheItem]
	now      func() time.Time
}

// NewCache 创建容量为 size 的缓存
func NewCache(size int) (*Cache, error) {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &Cache{
		lruCache: l,
		now:      time.Now,
	}, nil
}

// Set 设置缓存，TTL 为过期时间
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: c.now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *Cache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	if c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}
