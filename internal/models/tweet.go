package models

import (
	"database/sql"
	"time"
)

// Tweet types
const (
	TweetTypeOriginal = "Original"
	TweetTypeRetweet  = "Retweet"
)

// Tweet represents an authored post or retweet
type Tweet struct {
	ID           string         `gorm:"primaryKey;type:varchar(36);column:id"`
	UserID       string         `gorm:"type:varchar(36);not null;index:tweets_ix1;column:user_id"`
	Type         string         `gorm:"type:varchar(16);not null;default:'Original';column:type"`
	Text         string         `gorm:"type:varchar(280);not null;column:text"`
	RetweetRefID sql.NullString `gorm:"type:varchar(36);column:retweet_ref_id"`
	LikeCount    int64          `gorm:"not null;default:0;column:like_count"`
	CommentCount int64          `gorm:"not null;default:0;column:comment_count"`
	CreatedAt    time.Time      `gorm:"not null;column:created_at"`
	UpdatedAt    time.Time      `gorm:"not null;column:updated_at"`
	DeletedAt    sql.NullTime   `gorm:"column:deleted_at"`

	// Relationships
	Author *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Tweet
func (Tweet) TableName() string {
	return "tweets"
}
