package models

import (
	"time"

	"gorm.io/gorm"
)

// FriendRequest is a pending proposal of a friend edge between two users.
// Only pending rows exist: acceptance and rejection both delete the row, so
// the unique (requester, recipient) index doubles as the "one pending
// request per ordered pair" guarantee at the storage layer.
type FriendRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequestID   string    `gorm:"size:5;not null" json:"request_id"`
	RequesterID uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"requester_id"`
	RecipientID uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"recipient_id"`
	Accepted    bool      `gorm:"default:false" json:"accepted"`
	CreatedAt   time.Time `json:"created_at"`

	Requester User `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"requester,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}

// BeforeCreate assigns the short request id when one wasn't provided.
func (fr *FriendRequest) BeforeCreate(_ *gorm.DB) error {
	if fr.RequestID == "" {
		fr.RequestID = RandomRequestID()
	}
	return nil
}
