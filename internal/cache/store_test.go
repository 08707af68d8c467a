package cache

import (
	"testing"
	"time"

	"github.com/noobmasters/feedcache/internal/feed"
	"github.com/noobmasters/feedcache/pkg/config"
)

func TestFeedStoreKey(t *testing.T) {
	store := NewFeedStore(nil, &config.CacheConfig{Namespace: "noobmasters", TTLMinutes: 60})

	tests := []struct {
		name     string
		view     feed.ViewKind
		ownerID  string
		expected string
	}{
		{
			name:     "newsfeed key",
			view:     feed.ViewNewsfeed,
			ownerID:  "user-1",
			expected: "noobmasters_newsfeed_user-1",
		},
		{
			name:     "timeline key",
			view:     feed.ViewTimeline,
			ownerID:  "user-1",
			expected: "noobmasters_timeline_user-1",
		},
		{
			name:     "uuid owner",
			view:     feed.ViewNewsfeed,
			ownerID:  "8c742cde-5152-4a5c-8bb1-0d3f56a25b0a",
			expected: "noobmasters_newsfeed_8c742cde-5152-4a5c-8bb1-0d3f56a25b0a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := store.Key(tt.view, tt.ownerID); got != tt.expected {
				t.Errorf("Key() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFeedStoreTTL(t *testing.T) {
	store := NewFeedStore(nil, &config.CacheConfig{Namespace: "noobmasters", TTLMinutes: 60})
	if store.ttl != 60*time.Minute {
		t.Errorf("ttl = %v, want 60m", store.ttl)
	}
}
