package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/noobmasters/feedcache/internal/feed"
	"github.com/noobmasters/feedcache/pkg/config"
)

// FeedStore adapts the Redis cache to the feed.PageStore contract. Keys
// follow the {namespace}_{view}_{owner} scheme shared with the read path,
// and every write refreshes the full TTL.
type FeedStore struct {
	cache     *Cache
	namespace string
	ttl       time.Duration
}

// NewFeedStore creates a new feed page store
func NewFeedStore(c *Cache, cfg *config.CacheConfig) *FeedStore {
	return &FeedStore{
		cache:     c,
		namespace: cfg.Namespace,
		ttl:       cfg.CacheTTL(),
	}
}

// Key builds the cache key for one cached view
func (s *FeedStore) Key(view feed.ViewKind, ownerID string) string {
	return fmt.Sprintf("%s_%s_%s", s.namespace, view, ownerID)
}

// Get retrieves one cached page; a missing or expired entry yields (nil, nil)
func (s *FeedStore) Get(ctx context.Context, view feed.ViewKind, ownerID string) (*feed.Page, error) {
	val, err := s.cache.Get(ctx, s.Key(view, ownerID))
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var page feed.Page
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		return nil, fmt.Errorf("decode cached page: %w", err)
	}
	return &page, nil
}

// Set serializes and writes one cached page with a fresh TTL
func (s *FeedStore) Set(ctx context.Context, view feed.ViewKind, ownerID string, page *feed.Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode cached page: %w", err)
	}
	return s.cache.Set(ctx, s.Key(view, ownerID), data, s.ttl)
}
