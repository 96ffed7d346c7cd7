package repository

import (
	"context"
	"errors"

	"helenite/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend-request and friend-edge
// data operations. Friend edges live in the profile_friends join table and
// are always written symmetrically inside a transaction.
type FriendRepository interface {
	CreateRequest(ctx context.Context, request *models.FriendRequest) error
	GetRequest(ctx context.Context, requesterID, recipientID uint) (*models.FriendRequest, error)
	GetRequestByRequestID(ctx context.Context, requestID string) (*models.FriendRequest, error)
	DeleteRequest(ctx context.Context, id uint) error
	PendingRequestsFor(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	SentRequestsBy(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	Accept(ctx context.Context, request *models.FriendRequest) error
	AreFriends(ctx context.Context, profileID, friendID uint) (bool, error)
	FriendsOf(ctx context.Context, profileID uint) ([]models.Profile, error)
	FriendUserIDs(ctx context.Context, userID uint) ([]uint, error)
	RemoveEdge(ctx context.Context, profileID, friendID uint) error
	RemoveAllEdges(ctx context.Context, profileID uint) error
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// CreateRequest inserts a pending request. The unique (requester, recipient)
// index turns a concurrent double-send into a conflict instead of two rows.
func (r *friendRepository) CreateRequest(ctx context.Context, request *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Friend request already sent")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetRequest returns (nil, nil) when no pending request exists for the
// ordered pair.
func (r *friendRepository) GetRequest(ctx context.Context, requesterID, recipientID uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND recipient_id = ?", requesterID, recipientID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRepository) GetRequestByRequestID(ctx context.Context, requestID string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Recipient").
		Where("request_id = ?", requestID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", requestID)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRepository) DeleteRequest(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.FriendRequest{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Friend request", id)
	}
	return nil
}

func (r *friendRepository) PendingRequestsFor(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Requester.Profile").
		Where("recipient_id = ?", userID).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *friendRepository) SentRequestsBy(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.WithContext(ctx).
		Preload("Recipient").
		Preload("Recipient.Profile").
		Where("requester_id = ?", userID).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// Accept turns the pending request into a friend edge. Both directions of
// the edge and the request deletion commit together or not at all, so there
// is never a half-friendship visible to readers.
func (r *friendRepository) Accept(ctx context.Context, request *models.FriendRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var requester, recipient models.Profile
		if err := tx.Where("user_id = ?", request.RequesterID).First(&requester).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", request.RecipientID).First(&recipient).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"INSERT INTO profile_friends (profile_id, friend_id) VALUES (?, ?), (?, ?)",
			requester.ID, recipient.ID, recipient.ID, requester.ID,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&models.FriendRequest{}, request.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Profile", request.RequesterID)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Users are already friends")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) AreFriends(ctx context.Context, profileID, friendID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("profile_friends").
		Where("profile_id = ? AND friend_id = ?", profileID, friendID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) FriendsOf(ctx context.Context, profileID uint) ([]models.Profile, error) {
	var friends []models.Profile
	if err := r.db.WithContext(ctx).
		Joins("JOIN profile_friends pf ON pf.friend_id = profiles.id").
		Where("pf.profile_id = ?", profileID).
		Preload("User").
		Order("profiles.first_name ASC").
		Find(&friends).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friends, nil
}

// FriendUserIDs returns the user ids behind a user's friends. The feed query
// filters posts by user id, so this avoids loading full profiles there.
func (r *friendRepository) FriendUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Table("profile_friends pf").
		Joins("JOIN profiles own ON own.id = pf.profile_id").
		Joins("JOIN profiles friend ON friend.id = pf.friend_id").
		Where("own.user_id = ?", userID).
		Pluck("friend.user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// RemoveEdge deletes both directions of a friend edge.
func (r *friendRepository) RemoveEdge(ctx context.Context, profileID, friendID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(
			"DELETE FROM profile_friends WHERE (profile_id = ? AND friend_id = ?) OR (profile_id = ? AND friend_id = ?)",
			profileID, friendID, friendID, profileID,
		)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Friendship", friendID)
		}
		return nil
	})
}

// RemoveAllEdges clears every edge touching the profile. Runs before account
// deletion so the join table never references a dead profile.
func (r *friendRepository) RemoveAllEdges(ctx context.Context, profileID uint) error {
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM profile_friends WHERE profile_id = ? OR friend_id = ?", profileID, profileID).
		Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
