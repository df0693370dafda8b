package models

import (
	"time"
)

// Post categories. Every post belongs to exactly one.
const (
	CategoryDiscussion = "discussion"
	CategoryShowcase   = "showcase"
	CategoryFeedback   = "feedback"
	CategoryTutorial   = "tutorial"
	CategoryQuestion   = "question"
)

// Categories lists the valid post categories in display order.
var Categories = []string{
	CategoryDiscussion,
	CategoryShowcase,
	CategoryFeedback,
	CategoryTutorial,
	CategoryQuestion,
}

// ValidCategory reports whether s is one of the fixed post categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if s == c {
			return true
		}
	}
	return false
}

// Post represents a community post in the Atelier marketplace.
// Soft deletion is an explicit IsActive flag rather than a GORM DeletedAt
// column: deactivated posts must stay fetchable by ID so comment threads
// keep their referential integrity for moderation.
type Post struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	Title    string      `gorm:"not null" json:"title"`
	Content  string      `gorm:"type:text;not null" json:"content"`
	Category string      `gorm:"not null;index" json:"category"`
	UserID   uint        `gorm:"not null;index" json:"user_id"`
	User     User        `gorm:"foreignKey:UserID" json:"user"`
	Images   []PostImage `gorm:"foreignKey:PostID" json:"images,omitempty"`
	Tags     []PostTag   `gorm:"foreignKey:PostID" json:"tags,omitempty"`
	Views    uint        `gorm:"not null;default:0" json:"views"`
	IsActive bool        `gorm:"not null;default:true;index" json:"is_active"`
	IsPinned bool        `gorm:"not null;default:false" json:"is_pinned"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostImage is one entry of a post's ordered image list.
type PostImage struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PostID   uint   `gorm:"not null;index" json:"-"`
	URL      string `gorm:"not null" json:"url"`
	Position int    `gorm:"not null" json:"position"`
}

// PostTag is one normalized (trimmed, lower-cased) tag on a post.
// The store does not deduplicate tags; normalization happens in the
// service layer before rows are written.
type PostTag struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	PostID uint   `gorm:"not null;index" json:"-"`
	Tag    string `gorm:"not null;index" json:"tag"`
}
