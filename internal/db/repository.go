package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noobmasters/feedcache/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetActiveByID retrieves a user by ID, filtered to not soft-deleted and not blocked
func (r *UserRepository) GetActiveByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL AND blocked_at IS NULL", id).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// TweetRepository provides tweet-related database operations
type TweetRepository struct {
	*Repository
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(repo *Repository) *TweetRepository {
	return &TweetRepository{Repository: repo}
}

// GetByID retrieves a tweet by ID
func (r *TweetRepository) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tweet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tweet, nil
}

// CountByAuthors counts not-deleted tweets authored by any of the given users
func (r *TweetRepository) CountByAuthors(ctx context.Context, authorIDs []string) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Tweet{}).
		Where("user_id IN ? AND deleted_at IS NULL", authorIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByAuthors retrieves not-deleted tweets authored by any of the given
// users, newest first, with limit/offset pagination
func (r *TweetRepository) ListByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]models.Tweet, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var tweets []models.Tweet
	if err := r.db.WithContext(ctx).
		Where("user_id IN ? AND deleted_at IS NULL", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

// FollowRepository provides follow-related database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// FollowersOf retrieves the IDs of all users following the given user
func (r *FollowRepository) FollowersOf(ctx context.Context, userID string) ([]string, error) {
	var follows []models.Follow
	if err := r.db.WithContext(ctx).
		Where("following_id = ?", userID).
		Find(&follows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, len(follows))
	for i, f := range follows {
		ids[i] = f.FollowerID
	}
	return ids, nil
}

// FollowingOf retrieves the IDs of all users the given user follows
func (r *FollowRepository) FollowingOf(ctx context.Context, userID string) ([]string, error) {
	var follows []models.Follow
	if err := r.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Find(&follows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, len(follows))
	for i, f := range follows {
		ids[i] = f.FollowingID
	}
	return ids, nil
}

// LikeRetweetRepository provides like/retweet relation lookups
type LikeRetweetRepository struct {
	*Repository
}

// NewLikeRetweetRepository creates a new like/retweet repository
func NewLikeRetweetRepository(repo *Repository) *LikeRetweetRepository {
	return &LikeRetweetRepository{Repository: repo}
}

// Get retrieves the like/retweet relation for a (user, tweet) pair
func (r *LikeRetweetRepository) Get(ctx context.Context, userID, tweetID string) (*models.LikeRetweet, error) {
	var rel models.LikeRetweet
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		First(&rel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}
