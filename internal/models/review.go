package models

import (
	"time"
)

// Review rating and comment bounds, enforced by the service layer.
const (
	MinReviewRating     = 1
	MaxReviewRating     = 5
	MinReviewCommentLen = 10
	MaxReviewCommentLen = 500
)

// Review is a buyer's rating and comment on a shared work.
// A user reviews a given work at most once.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WorkID    uint      `gorm:"not null;uniqueIndex:idx_review_work_user" json:"work_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_work_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
