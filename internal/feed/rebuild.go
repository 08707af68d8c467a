package feed

import (
	"context"
	"fmt"
)

// Rebuilder computes a feed page from scratch against the content store.
// The read path uses it on a cold cache miss; the router uses it to reseed
// a newsfeed after a follow.
type Rebuilder struct {
	content  ContentStore
	resolver *Resolver
}

// NewRebuilder creates a new rebuilder
func NewRebuilder(content ContentStore) *Rebuilder {
	return &Rebuilder{
		content:  content,
		resolver: NewResolver(content),
	}
}

// NewsFeed builds the given page of a user's newsfeed: not-deleted tweets
// authored by accounts they follow, newest first, denormalized for that
// viewer, with the lookahead window fetched past the requested page.
func (b *Rebuilder) NewsFeed(ctx context.Context, userID string, size, page int) (*Page, error) {
	following, err := b.content.FollowingOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve following of %s: %w", userID, err)
	}
	return b.build(ctx, ViewNewsfeed, userID, following, size, page)
}

// Timeline builds the given page of a user's own posts
func (b *Rebuilder) Timeline(ctx context.Context, userID string, size, page int) (*Page, error) {
	return b.build(ctx, ViewTimeline, userID, []string{userID}, size, page)
}

func (b *Rebuilder) build(ctx context.Context, view ViewKind, viewerID string, authorIDs []string, size, page int) (*Page, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid page size %d", size)
	}
	if page < 0 {
		page = 0
	}

	total, err := b.content.CountTweetsByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("count tweets: %w", err)
	}

	result := &Page{
		OwnerID:       viewerID,
		View:          view,
		Page:          page,
		Size:          size,
		TotalElements: total,
	}
	result.recount()

	rows, err := b.content.ListTweetsByAuthors(ctx, authorIDs, size+lookaheadRows, page*size)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}

	result.Tweets = make([]Tweet, 0, len(rows))
	for i := range rows {
		t := SnapshotTweet(&rows[i])
		if err := b.resolver.decorate(ctx, &t, viewerID); err != nil {
			return nil, err
		}
		result.Tweets = append(result.Tweets, t)
	}
	return result, nil
}
