package db

import (
	"context"

	"github.com/noobmasters/feedcache/internal/models"
)

// Store aggregates the repositories behind the read-only content-store
// contract the feed core consumes
type Store struct {
	users        *UserRepository
	tweets       *TweetRepository
	follows      *FollowRepository
	likeRetweets *LikeRetweetRepository
}

// NewStore creates a new content store over a repository
func NewStore(repo *Repository) *Store {
	return &Store{
		users:        NewUserRepository(repo),
		tweets:       NewTweetRepository(repo),
		follows:      NewFollowRepository(repo),
		likeRetweets: NewLikeRetweetRepository(repo),
	}
}

// TweetByID retrieves a tweet by ID
func (s *Store) TweetByID(ctx context.Context, id string) (*models.Tweet, error) {
	return s.tweets.GetByID(ctx, id)
}

// UserByID retrieves a user by ID
func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ActiveUserByID retrieves a user by ID, filtered to not-deleted and not-blocked
func (s *Store) ActiveUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetActiveByID(ctx, id)
}

// FollowersOf retrieves the IDs of users following the given user
func (s *Store) FollowersOf(ctx context.Context, userID string) ([]string, error) {
	return s.follows.FollowersOf(ctx, userID)
}

// FollowingOf retrieves the IDs of users the given user follows
func (s *Store) FollowingOf(ctx context.Context, userID string) ([]string, error) {
	return s.follows.FollowingOf(ctx, userID)
}

// CountTweetsByAuthors counts not-deleted tweets by the given authors
func (s *Store) CountTweetsByAuthors(ctx context.Context, authorIDs []string) (int64, error) {
	return s.tweets.CountByAuthors(ctx, authorIDs)
}

// ListTweetsByAuthors lists not-deleted tweets by the given authors, newest first
func (s *Store) ListTweetsByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]models.Tweet, error) {
	return s.tweets.ListByAuthors(ctx, authorIDs, limit, offset)
}

// LikeRetweet retrieves the like/retweet relation row for a (user, tweet) pair
func (s *Store) LikeRetweet(ctx context.Context, userID, tweetID string) (*models.LikeRetweet, error) {
	return s.likeRetweets.Get(ctx, userID, tweetID)
}
