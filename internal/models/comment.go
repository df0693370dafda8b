package models

import (
	"time"
)

// Comment represents a comment on a post, optionally threaded under a
// parent comment belonging to the same post. Like posts, comments soft
// delete via IsActive so reply chains stay addressable.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	PostID          uint      `gorm:"not null;index" json:"post_id"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id,omitempty"`
	User            User      `gorm:"foreignKey:UserID" json:"user"`
	Replies         []Comment `gorm:"foreignKey:ParentCommentID" json:"replies,omitempty"`
	IsActive        bool      `gorm:"not null;default:true;index" json:"is_active"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// RepliesCount is not persisted; computed at query time
	RepliesCount int       `gorm:"->" json:"replies_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
