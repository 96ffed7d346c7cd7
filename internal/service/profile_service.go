package service

import (
	"context"
	"time"

	"helenite/internal/models"
	"helenite/internal/repository"
	"helenite/internal/storage"
	"helenite/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries everything needed to open an account.
type RegisterInput struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	FirstName            string
	LastName             string
	Birthday             time.Time
	BirthPlace           string
	PictureFilename      string
	Picture              []byte
}

// UpdateSettingsInput carries a settings change. Nil pointers mean "leave as
// is"; a password change requires the old password and a confirmation.
type UpdateSettingsInput struct {
	Private         *bool
	ShowBirthday    *bool
	PictureFilename string
	Picture         []byte

	OldPassword             string
	NewPassword             string
	NewPasswordConfirmation string
}

// ProfileService provides account and profile business logic.
type ProfileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	friendRepo  repository.FriendRepository
	postRepo    repository.PostRepository
	store       storage.Storage
}

// NewProfileService returns a new ProfileService.
func NewProfileService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	friendRepo repository.FriendRepository,
	postRepo repository.PostRepository,
	store storage.Storage,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		friendRepo:  friendRepo,
		postRepo:    postRepo,
		store:       store,
	}
}

// deriveSlug turns the username into a unique profile slug, appending a
// random suffix when the plain form is taken.
func (s *ProfileService) deriveSlug(ctx context.Context, username string) (string, error) {
	base := models.Slugify(username)
	taken, err := s.profileRepo.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	return base + "-" + models.RandomRequestID(), nil
}

// Register validates the input and creates the user plus profile in one
// transaction.
func (s *ProfileService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePasswordConfirmation(in.Password, in.PasswordConfirmation); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, models.NewValidationError("First and last name are required")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	slug, err := s.deriveSlug(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	picture := models.DefaultPicture
	if len(in.Picture) > 0 {
		ref, err := s.store.Save("profile_pictures", in.PictureFilename, in.Picture)
		if err != nil {
			return nil, err
		}
		picture = ref
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}
	profile := &models.Profile{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Birthday:   in.Birthday,
		BirthPlace: in.BirthPlace,
		Slug:       slug,
		Picture:    picture,
	}
	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if picture != models.DefaultPicture {
			_ = s.store.Remove(picture)
		}
		return nil, err
	}
	return user, nil
}

// ProfileView returns the profile behind the slug together with the owner's
// posts, subject to privacy.
func (s *ProfileService) ProfileView(ctx context.Context, viewerID uint, slug string, limit, offset int) (*models.Profile, []models.Post, error) {
	profile, err := s.profileRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	if profile.Private && profile.UserID != viewerID {
		viewer, err := s.profileRepo.GetByUserID(ctx, viewerID)
		if err != nil {
			return nil, nil, err
		}
		friends, err := s.friendRepo.AreFriends(ctx, viewer.ID, profile.ID)
		if err != nil {
			return nil, nil, err
		}
		if !friends {
			return nil, nil, models.NewForbiddenError("This profile is private")
		}
	}

	posts, err := s.postRepo.GetByUserID(ctx, profile.UserID, limit, offset, viewerID)
	if err != nil {
		return nil, nil, err
	}
	return profile, posts, nil
}

// UpdateSettings applies a settings change for the user's own profile.
func (s *ProfileService) UpdateSettings(ctx context.Context, userID uint, in UpdateSettingsInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.NewPassword != "" || in.OldPassword != "" {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)) != nil {
			return nil, models.NewUnauthorizedError("Old password is incorrect")
		}
		if err := validation.ValidatePassword(in.NewPassword); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if err := validation.ValidatePasswordConfirmation(in.NewPassword, in.NewPasswordConfirmation); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if len(in.Picture) > 0 {
		ref, err := s.store.Save("profile_pictures", in.PictureFilename, in.Picture)
		if err != nil {
			return nil, err
		}
		old := profile.Picture
		profile.Picture = ref
		if old != "" && old != ref {
			_ = s.store.Remove(old)
		}
	}

	if in.Private != nil {
		profile.Private = *in.Private
	}
	if in.ShowBirthday != nil {
		profile.ShowBirthday = *in.ShowBirthday
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteAccount removes the user, their profile, posts, likes, comments,
// pending requests and friend edges.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	// Collect media references before the rows disappear. Limit -1 means
	// no limit in GORM.
	posts, err := s.postRepo.GetByUserID(ctx, userID, -1, 0, userID)
	if err != nil {
		return err
	}

	if err := s.friendRepo.RemoveAllEdges(ctx, profile.ID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	_ = s.store.Remove(profile.Picture)
	for _, post := range posts {
		if post.Image != "" {
			_ = s.store.Remove(post.Image)
		}
	}
	return nil
}
