package models

import (
	"time"

	"gorm.io/gorm"
)

// ErrEmptyComment is returned when a comment carries no text.
var ErrEmptyComment = NewValidationError("You can't create a comment with no text")

// Comment represents a comment left on a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
}

// BeforeCreate rejects blank comments at the storage boundary.
func (cm *Comment) BeforeCreate(_ *gorm.DB) error {
	if cm.Text == "" {
		return ErrEmptyComment
	}
	return nil
}
