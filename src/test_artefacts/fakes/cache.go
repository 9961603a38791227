package fakes

import (
	"context"
	"sync"
	"time"
)

// MemoryCache implementa repositories.EntityCache em memória.
type MemoryCache struct {
	mu          sync.Mutex
	values      map[string]string
	sets        map[string]map[string]bool
	Invalidated []string
	written     chan string

	// SetDelay atrasa cada SetWithRegistry, simulando um Redis lento.
	SetDelay time.Duration
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		values:  make(map[string]string),
		sets:    make(map[string]map[string]bool),
		written: make(chan string, 100),
	}
}

// Sets notifica cada chave gravada; os sets acontecem em goroutine.
func (c *MemoryCache) Sets() <-chan string {
	return c.written
}

func (c *MemoryCache) SetWithRegistry(ctx context.Context, cacheKey string, cacheValue string, registryKeys []string) error {
	if c.SetDelay > 0 {
		time.Sleep(c.SetDelay)
	}

	c.mu.Lock()
	c.values[cacheKey] = cacheValue
	for _, registryKey := range registryKeys {
		if c.sets[registryKey] == nil {
			c.sets[registryKey] = make(map[string]bool)
		}
		c.sets[registryKey][cacheKey] = true
	}
	c.mu.Unlock()

	select {
	case c.written <- cacheKey:
	default:
	}
	return nil
}

func (c *MemoryCache) GetKey(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, found := c.values[key]
	return value, found, nil
}

func (c *MemoryCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var members []string
	for member := range c.sets[key] {
		members = append(members, member)
	}
	return members, nil
}

func (c *MemoryCache) InvalidateKeys(ctx context.Context, keys []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
		delete(c.sets, key)
		c.Invalidated = append(c.Invalidated, key)
	}
	return nil
}

func (c *MemoryCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, found := c.values[key]
	return found
}

// Put grava direto, sem registry nem notificação.
func (c *MemoryCache) Put(key string, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

func (c *MemoryCache) InvalidatedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.Invalidated...)
}
