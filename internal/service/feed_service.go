package service

import (
	"context"

	"helenite/internal/models"
	"helenite/internal/observability"
	"helenite/internal/repository"
)

// FeedService assembles the personal feed and the discover sample.
type FeedService struct {
	postRepo   repository.PostRepository
	friendRepo repository.FriendRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(postRepo repository.PostRepository, friendRepo repository.FriendRepository) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		friendRepo: friendRepo,
	}
}

// FeedFor returns the user's own posts and their friends' posts, newest
// first.
func (s *FeedService) FeedFor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	friendIDs, err := s.friendRepo.FriendUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.Feed(ctx, userID, friendIDs, limit, offset)
}

// DiscoverFor returns a fresh random sample of public posts by other users.
// Two consecutive calls may return different posts; that is the point.
func (s *FeedService) DiscoverFor(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.postRepo.Discover(ctx, userID)
}

// ToggleLike likes the post behind the slug, or removes the user's existing
// like. Returns the resulting liked state and like count.
func (s *FeedService) ToggleLike(ctx context.Context, userID uint, postSlug string) (bool, int, error) {
	post, err := s.postRepo.GetBySlug(ctx, postSlug, userID)
	if err != nil {
		return false, 0, err
	}

	liked, err := s.postRepo.ToggleLike(ctx, userID, post.ID)
	if err != nil {
		return false, 0, err
	}

	count := post.LikesCount
	if liked {
		count++
		observability.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		count--
		if count < 0 {
			count = 0
		}
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	}
	return liked, count, nil
}
