package feed

import (
	"context"

	"github.com/noobmasters/feedcache/internal/models"
)

// PageStore is the cached-view store the router mutates. Get returns
// (nil, nil) on a miss; the router treats a miss as an inert entry and
// never recreates it. Every Set refreshes the entry's TTL in full.
type PageStore interface {
	Get(ctx context.Context, view ViewKind, ownerID string) (*Page, error)
	Set(ctx context.Context, view ViewKind, ownerID string, page *Page) error
}

// ContentStore is the authoritative content store, consumed read-only.
// Lookups return (nil, nil) when the row does not exist.
type ContentStore interface {
	TweetByID(ctx context.Context, id string) (*models.Tweet, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	// ActiveUserByID filters out soft-deleted and blocked users
	ActiveUserByID(ctx context.Context, id string) (*models.User, error)
	FollowersOf(ctx context.Context, userID string) ([]string, error)
	FollowingOf(ctx context.Context, userID string) ([]string, error)
	CountTweetsByAuthors(ctx context.Context, authorIDs []string) (int64, error)
	ListTweetsByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]models.Tweet, error)
	LikeRetweet(ctx context.Context, userID, tweetID string) (*models.LikeRetweet, error)
}
