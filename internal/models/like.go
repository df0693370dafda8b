package models

import (
	"time"
)

// Like represents a user's like on a post.
// The combination of UserID and PostID is unique, so the likes of a post
// form a true set keyed by user identity: re-liking is a no-op at the
// database level and toggling twice restores the original state.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike mirrors Like for comments.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_clike_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_clike_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}
