package models

import (
	"time"
)

// Follow represents a follow relationship; the follower receives the
// following user's posts in their newsfeed
type Follow struct {
	FollowerID  string    `gorm:"primaryKey;type:varchar(36);column:follower_id"`
	FollowingID string    `gorm:"primaryKey;type:varchar(36);column:following_id"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Follower  *User `gorm:"foreignKey:FollowerID;references:ID"`
	Following *User `gorm:"foreignKey:FollowingID;references:ID"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}
