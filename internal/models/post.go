package models

import (
	"time"

	"gorm.io/gorm"
)

// postSlugLength matches the historical 14-character random slug format.
const postSlugLength = 14

// ErrEmptyPost is returned when a post carries neither text nor an image.
var ErrEmptyPost = NewValidationError("A post cannot be empty")

// Post is a piece of content owned by a user. Either Text or Image must be
// present; both empty is rejected on write.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Text        string    `gorm:"size:300" json:"text"`
	Image       string    `json:"image"`
	Slug        string    `gorm:"size:15;uniqueIndex;not null" json:"slug"`
	PublishedAt time.Time `gorm:"autoCreateTime" json:"published_at"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"->;-:migration" json:"liked"`
}

// BeforeCreate rejects empty posts and assigns a random slug when one wasn't
// provided. The non-empty check also runs here so it holds no matter which
// code path writes the row.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.Text == "" && p.Image == "" {
		return ErrEmptyPost
	}
	if p.Slug == "" {
		p.Slug = RandomSlug(postSlugLength)
	}
	return nil
}

// Endpoint returns the API path for this post. The second-to-last path
// segment is the slug; the search bridge relies on that layout.
func (p *Post) Endpoint() string {
	return "/api/v1/profile/post/" + p.Slug + "/"
}

// IsPublic reports whether the post may appear in discovery and the external
// search index. A post is public iff its owner's profile is.
func (p *Post) IsPublic() bool {
	if p.User.Profile == nil {
		return false
	}
	return p.User.Profile.IsPublic()
}
