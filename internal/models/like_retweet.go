package models

// LikeRetweet records a viewer's like/retweet relation to a tweet
type LikeRetweet struct {
	UserID      string `gorm:"primaryKey;type:varchar(36);column:user_id"`
	TweetID     string `gorm:"primaryKey;type:varchar(36);column:tweet_id"`
	IsLiked     bool   `gorm:"not null;default:false;column:is_liked"`
	IsRetweeted bool   `gorm:"not null;default:false;column:is_retweeted"`

	// Relationships
	User  *User  `gorm:"foreignKey:UserID;references:ID"`
	Tweet *Tweet `gorm:"foreignKey:TweetID;references:ID"`
}

// TableName specifies the table name for LikeRetweet
func (LikeRetweet) TableName() string {
	return "like_retweets"
}
