package models

import (
	"database/sql"
	"time"
)

// User represents a registered account
type User struct {
	ID                string         `gorm:"primaryKey;type:varchar(36);column:id"`
	UserName          string         `gorm:"type:varchar(32);not null;uniqueIndex:users_ux1;column:user_name"`
	DisplayName       string         `gorm:"type:varchar(64);not null;default:'';column:display_name"`
	Email             string         `gorm:"type:varchar(255);not null;column:email"`
	Bio               sql.NullString `gorm:"type:varchar(160);column:bio"`
	ProfilePictureURL string         `gorm:"type:varchar(1024);not null;default:'';column:profile_picture_url"`
	CoverPictureURL   string         `gorm:"type:varchar(1024);not null;default:'';column:cover_picture_url"`
	CreatedAt         time.Time      `gorm:"not null;column:created_at"`
	UpdatedAt         time.Time      `gorm:"not null;column:updated_at"`

	// A user with either timestamp set is filtered out of every feed.
	DeletedAt sql.NullTime `gorm:"column:deleted_at"`
	BlockedAt sql.NullTime `gorm:"column:blocked_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// IsActive reports whether the user is neither soft-deleted nor blocked
func (u *User) IsActive() bool {
	return !u.DeletedAt.Valid && !u.BlockedAt.Valid
}
