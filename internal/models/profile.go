package models

import (
	"time"
)

// DefaultPicture is the placeholder reference used when no profile picture
// was uploaded.
const DefaultPicture = "profile_pictures/default_pfp.png"

// Profile is the social extension of a User (1:1). The friends relation is
// stored as a directed many-to-many self-join but the application keeps it
// symmetric: every edge mutation writes both directions in one transaction.
type Profile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	FirstName    string    `gorm:"size:15;not null" json:"first_name"`
	LastName     string    `gorm:"size:15;not null" json:"last_name"`
	Birthday     time.Time `json:"birthday"`
	BirthPlace   string    `gorm:"size:50;not null" json:"birth_place"`
	Slug         string    `gorm:"size:30;uniqueIndex;not null" json:"slug"`
	Picture      string    `json:"picture"`
	Private      bool      `gorm:"default:false" json:"private"`
	ShowBirthday bool      `gorm:"default:true" json:"show_birthday"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Friends []*Profile `gorm:"many2many:profile_friends;joinForeignKey:ProfileID;joinReferences:FriendID" json:"-"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// FullName returns the display name associated with the profile.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// IsPublic reports whether the profile may appear in discovery and the
// external search index.
func (p *Profile) IsPublic() bool {
	return !p.Private
}

// Endpoint returns the API path for this profile. The trailing slash is part
// of the contract: search hits are resolved back to a slug by taking the
// second-to-last path segment.
func (p *Profile) Endpoint() string {
	return "/api/v1/profile/" + p.Slug + "/"
}
