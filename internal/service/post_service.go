package service

import (
	"context"
	"strings"

	"helenite/internal/models"
	"helenite/internal/repository"
	"helenite/internal/storage"
)

// CreatePostInput carries a new post. Image is the raw upload; empty means
// text-only.
type CreatePostInput struct {
	UserID        uint
	Text          string
	ImageFilename string
	Image         []byte
}

// PostService provides post and comment business logic.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	profileRepo repository.ProfileRepository
	friendRepo  repository.FriendRepository
	store       storage.Storage
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	profileRepo repository.ProfileRepository,
	friendRepo repository.FriendRepository,
	store storage.Storage,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		profileRepo: profileRepo,
		friendRepo:  friendRepo,
		store:       store,
	}
}

// CreatePost stores the post, persisting the image first when one was
// uploaded. A post needs text or an image; neither is rejected.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && len(in.Image) == 0 {
		return nil, models.ErrEmptyPost
	}
	if len(text) > 300 {
		return nil, models.NewValidationError("Post text must not exceed 300 characters")
	}

	var imageRef string
	if len(in.Image) > 0 {
		ref, err := s.store.Save("post_images", in.ImageFilename, in.Image)
		if err != nil {
			return nil, err
		}
		imageRef = ref
	}

	post := &models.Post{
		UserID: in.UserID,
		Text:   text,
		Image:  imageRef,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		if imageRef != "" {
			_ = s.store.Remove(imageRef)
		}
		return nil, err
	}
	return post, nil
}

// canView reports whether the viewer may see content owned by ownerUserID.
// Content behind a private profile is visible to the owner and friends only.
func (s *PostService) canView(ctx context.Context, viewerID, ownerUserID uint) (bool, error) {
	if viewerID == ownerUserID {
		return true, nil
	}
	owner, err := s.profileRepo.GetByUserID(ctx, ownerUserID)
	if err != nil {
		return false, err
	}
	if !owner.Private {
		return true, nil
	}
	viewer, err := s.profileRepo.GetByUserID(ctx, viewerID)
	if err != nil {
		return false, err
	}
	return s.friendRepo.AreFriends(ctx, viewer.ID, owner.ID)
}

// GetPost returns the post behind the slug with its comments, subject to the
// owner's privacy.
func (s *PostService) GetPost(ctx context.Context, viewerID uint, slug string) (*models.Post, []models.Comment, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug, viewerID)
	if err != nil {
		return nil, nil, err
	}

	allowed, err := s.canView(ctx, viewerID, post.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, models.NewForbiddenError("This post belongs to a private profile")
	}

	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

// DeletePost removes the user's own post along with its likes, comments and
// stored image.
func (s *PostService) DeletePost(ctx context.Context, userID uint, slug string) error {
	post, err := s.postRepo.GetBySlug(ctx, slug, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}
	if post.Image != "" {
		_ = s.store.Remove(post.Image)
	}
	return nil
}

// AddComment attaches a comment to the post behind the slug.
func (s *PostService) AddComment(ctx context.Context, userID uint, slug, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.ErrEmptyComment
	}
	if len(text) > 500 {
		return nil, models.NewValidationError("Comment text must not exceed 500 characters")
	}

	post, err := s.postRepo.GetBySlug(ctx, slug, userID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canView(ctx, userID, post.UserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, models.NewForbiddenError("This post belongs to a private profile")
	}

	comment := &models.Comment{
		UserID: userID,
		PostID: post.ID,
		Text:   text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
