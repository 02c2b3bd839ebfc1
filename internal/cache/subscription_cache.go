package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/metrics"
)

// SnapshotLoader lists the current subscription document of every user.
type SnapshotLoader interface {
	SnapshotDocs(ctx context.Context) (map[string][]byte, error)
}

// SubscriptionCache is the in-process snapshot store used when no Redis is configured.
type SubscriptionCache struct {
	mu    sync.RWMutex
	cache map[string][]byte
}

func NewSubscriptionCache() *SubscriptionCache {
	return &SubscriptionCache{
		cache: make(map[string][]byte),
	}
}

func (c *SubscriptionCache) LoadInitialData(ctx context.Context, loader SnapshotLoader) error {
	zap.L().Info("loading subscription snapshots into cache")
	docs, err := loader.SnapshotDocs(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for userID, doc := range docs {
		c.cache[userID] = clone(doc)
	}
	metrics.SnapshotCacheItems.Set(float64(len(c.cache)))
	zap.L().Info("subscription snapshots loaded", zap.Int("count", len(c.cache)))
	return nil
}

func (c *SubscriptionCache) Get(_ context.Context, userID string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, found := c.cache[userID]
	if !found {
		return nil, false, nil
	}
	return clone(doc), true, nil
}

func (c *SubscriptionCache) Put(_ context.Context, userID string, doc []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[userID] = clone(doc)
	metrics.SnapshotCacheItems.Set(float64(len(c.cache)))
	zap.L().Debug("cache: stored subscription snapshot", zap.String("user_id", userID))
	return nil
}

func (c *SubscriptionCache) Delete(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[userID]; found {
		delete(c.cache, userID)
		metrics.SnapshotCacheItems.Set(float64(len(c.cache)))
		zap.L().Debug("cache: deleted subscription snapshot", zap.String("user_id", userID))
	}
	return nil
}

func (c *SubscriptionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
