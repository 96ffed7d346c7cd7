package repository

import (
	"context"
	"errors"

	"helenite/internal/models"

	"gorm.io/gorm"
)

// discoverLimit caps how many public posts a discover sample returns.
const discoverLimit = 30

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]models.Post, error)
	Feed(ctx context.Context, userID uint, friendIDs []uint, limit, offset int) ([]models.Post, error)
	Discover(ctx context.Context, userID uint) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails adds the computed columns every post read carries:
// like/comment counts and whether currentUserID has liked the post.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	return db.Model(&models.Post{}).Select(
		"posts.*, "+
			"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count, "+
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count, "+
			"EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked",
		currentUserID,
	)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Post slug already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error) {
	var post models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("User.Profile").
		Where("posts.slug = ?", slug).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("User.Profile").
		Where("posts.user_id = ?", userID).
		Order("posts.published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Feed returns the user's own posts plus their friends' posts, newest first.
func (r *postRepository) Feed(ctx context.Context, userID uint, friendIDs []uint, limit, offset int) ([]models.Post, error) {
	authorIDs := append([]uint{userID}, friendIDs...)

	var posts []models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Preload("User.Profile").
		Where("posts.user_id IN ?", authorIDs).
		Order("posts.published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Discover samples up to discoverLimit public posts not authored by the
// user. The sample is re-drawn on every call; RANDOM() works on both
// PostgreSQL and SQLite.
func (r *postRepository) Discover(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Preload("User.Profile").
		Joins("JOIN profiles ON profiles.user_id = posts.user_id").
		Where("profiles.private = ? AND posts.user_id != ?", false, userID).
		Order("RANDOM()").
		Limit(discoverLimit).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
}

// ToggleLike likes the post, or removes the like when one already exists.
// The insert goes first and the unique (user, post) index decides which case
// this is, so two concurrent toggles cannot both insert. Returns true when
// the post ends up liked.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	like := models.Like{UserID: userID, PostID: postID}
	err := r.db.WithContext(ctx).Create(&like).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return false, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
