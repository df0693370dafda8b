package models

import (
	"time"
)

// Limits on shared works, enforced by the service layer.
const (
	MaxWorkTitleLen = 100
	MaxWorkDescLen  = 500
	MaxWorkTags     = 10
	MaxWorkTagLen   = 20
	MaxWorkImages   = 5
	MinWorkImages   = 1
)

// Work is a design work shared to the marketplace: a portfolio piece buyers
// browse and review.
type Work struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text;not null" json:"description"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        User        `gorm:"foreignKey:UserID" json:"user"`
	Images      []WorkImage `gorm:"foreignKey:WorkID" json:"images,omitempty"`
	Tags        []WorkTag   `gorm:"foreignKey:WorkID" json:"tags,omitempty"`
	IsActive    bool        `gorm:"not null;default:true;index" json:"is_active"`
	// ReviewsCount is not persisted; computed at query time
	ReviewsCount int `gorm:"->" json:"reviews_count"`
	// AverageRating is not persisted; computed at query time
	AverageRating float64   `gorm:"->" json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WorkImage is one entry of a work's ordered image list (1 to 5 per work).
type WorkImage struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	WorkID   uint   `gorm:"not null;index" json:"-"`
	URL      string `gorm:"not null" json:"url"`
	Position int    `gorm:"not null" json:"position"`
}

// WorkTag is one tag on a work. Unlike post tags, work tags are
// deduplicated when the draft collects them.
type WorkTag struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	WorkID uint   `gorm:"not null;index" json:"-"`
	Tag    string `gorm:"not null;index" json:"tag"`
}
