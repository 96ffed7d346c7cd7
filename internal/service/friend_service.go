// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"helenite/internal/models"
	"helenite/internal/observability"
	"helenite/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
// Friendship is symmetric; requests are directional and only exist while
// pending. Accepting and rejecting both remove the request row, so a new
// request for the same pair is possible afterwards.
type FriendService struct {
	friendRepo  repository.FriendRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo:  friendRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// RequestFriendship sends a friend request to the profile behind the slug.
func (s *FriendService) RequestFriendship(ctx context.Context, userID uint, recipientSlug string) (*models.FriendRequest, error) {
	recipient, err := s.profileRepo.GetBySlug(ctx, recipientSlug)
	if err != nil {
		return nil, err
	}
	if recipient.UserID == userID {
		return nil, models.NewValidationError("You cannot send a friend request to yourself")
	}

	requester, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.AreFriends(ctx, requester.ID, recipient.ID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, models.NewConflictError("You are already friends")
	}

	// A pending request in either direction blocks a new one. The reverse
	// case tells the sender to respond instead of re-requesting.
	if existing, err := s.friendRepo.GetRequest(ctx, userID, recipient.UserID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Friend request already sent")
	}
	if reverse, err := s.friendRepo.GetRequest(ctx, recipient.UserID, userID); err != nil {
		return nil, err
	} else if reverse != nil {
		return nil, models.NewConflictError("This user already sent you a friend request")
	}

	request := &models.FriendRequest{
		RequesterID: userID,
		RecipientID: recipient.UserID,
	}
	if err := s.friendRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	observability.FriendRequestTransitions.WithLabelValues("sent").Inc()
	return request, nil
}

// AcceptFriendship accepts a pending request addressed to the user. The
// friend edge is written in both directions and the request row removed
// atomically.
func (s *FriendService) AcceptFriendship(ctx context.Context, userID uint, requestID string) error {
	request, err := s.friendRepo.GetRequestByRequestID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.RecipientID != userID {
		return models.NewForbiddenError("You can only accept friend requests sent to you")
	}

	if err := s.friendRepo.Accept(ctx, request); err != nil {
		return err
	}

	observability.FriendRequestTransitions.WithLabelValues("accepted").Inc()
	return nil
}

// RejectFriendship declines a pending request. The recipient rejects, the
// requester cancels; either way the row is deleted and the pair may try
// again later.
func (s *FriendService) RejectFriendship(ctx context.Context, userID uint, requestID string) error {
	request, err := s.friendRepo.GetRequestByRequestID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.RecipientID != userID && request.RequesterID != userID {
		return models.NewForbiddenError("You can only reject or cancel your own pending requests")
	}

	if err := s.friendRepo.DeleteRequest(ctx, request.ID); err != nil {
		return err
	}

	observability.FriendRequestTransitions.WithLabelValues("rejected").Inc()
	return nil
}

// RemoveFriend dissolves an existing friendship with the profile behind the
// slug. Both directions of the edge go away.
func (s *FriendService) RemoveFriend(ctx context.Context, userID uint, friendSlug string) error {
	friend, err := s.profileRepo.GetBySlug(ctx, friendSlug)
	if err != nil {
		return err
	}
	if friend.UserID == userID {
		return models.NewValidationError("You cannot unfriend yourself")
	}

	own, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.friendRepo.RemoveEdge(ctx, own.ID, friend.ID); err != nil {
		return err
	}

	observability.FriendRequestTransitions.WithLabelValues("removed").Inc()
	return nil
}

// FriendsOf lists the friends of the profile behind the slug. A private
// profile's friend list is visible only to the owner and their friends.
func (s *FriendService) FriendsOf(ctx context.Context, viewerID uint, slug string) ([]models.Profile, error) {
	profile, err := s.profileRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if profile.Private && profile.UserID != viewerID {
		viewer, err := s.profileRepo.GetByUserID(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		friends, err := s.friendRepo.AreFriends(ctx, viewer.ID, profile.ID)
		if err != nil {
			return nil, err
		}
		if !friends {
			return nil, models.NewForbiddenError("This profile is private")
		}
	}

	return s.friendRepo.FriendsOf(ctx, profile.ID)
}

// PendingRequests returns requests awaiting the user's decision.
func (s *FriendService) PendingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.PendingRequestsFor(ctx, userID)
}

// SentRequests returns requests the user has sent that are still pending.
func (s *FriendService) SentRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.SentRequestsBy(ctx, userID)
}
