package service

import (
	"context"
	"errors"
	"testing"

	"helenite/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:             "newuser",
		Email:                "new@example.com",
		Password:             "validpass1",
		PasswordConfirmation: "validpass1",
		FirstName:            "New",
		LastName:             "User",
		BirthPlace:           "Testville",
	}
}

func newProfileService(users *userRepoStub, profiles *profileRepoStub, friends *friendRepoStub, posts *postRepoStub, store *storageStub) *ProfileService {
	return NewProfileService(users, profiles, friends, posts, store)
}

func TestProfileServiceRegisterPasswordRules(t *testing.T) {
	svc := newProfileService(noopUserRepo(), noopProfileRepo(), noopFriendRepo(), noopPostRepo(), noopStorage())

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"too short", func(in *RegisterInput) { in.Password, in.PasswordConfirmation = "ab1", "ab1" }},
		{"no number", func(in *RegisterInput) { in.Password, in.PasswordConfirmation = "onlyletters", "onlyletters" }},
		{"no letter", func(in *RegisterInput) { in.Password, in.PasswordConfirmation = "12345678", "12345678" }},
		{"confirmation mismatch", func(in *RegisterInput) { in.PasswordConfirmation = "different1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegisterInput()
			tt.mutate(&in)
			_, err := svc.Register(context.Background(), in)
			var appErr *models.AppError
			if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected validation app error, got %#v", err)
			}
		})
	}
}

func TestProfileServiceRegisterEmailTaken(t *testing.T) {
	users := noopUserRepo()
	users.getByEmailFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 1}, nil
	}

	svc := newProfileService(users, noopProfileRepo(), noopFriendRepo(), noopPostRepo(), noopStorage())
	_, err := svc.Register(context.Background(), validRegisterInput())
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestProfileServiceRegisterSuccess(t *testing.T) {
	var createdUser *models.User
	var createdProfile *models.Profile
	users := noopUserRepo()
	users.createWithProfileFn = func(_ context.Context, user *models.User, profile *models.Profile) error {
		createdUser = user
		createdProfile = profile
		return nil
	}

	svc := newProfileService(users, noopProfileRepo(), noopFriendRepo(), noopPostRepo(), noopStorage())
	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if createdUser == nil || createdProfile == nil {
		t.Fatal("user and profile were not created together")
	}
	if user.Password == "validpass1" {
		t.Fatal("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("validpass1")) != nil {
		t.Fatal("stored hash does not match the password")
	}
	if createdProfile.Slug != "newuser" {
		t.Fatalf("expected slug derived from username, got %q", createdProfile.Slug)
	}
	if createdProfile.Picture != models.DefaultPicture {
		t.Fatalf("expected default picture, got %q", createdProfile.Picture)
	}
}

func TestProfileServiceRegisterSlugCollision(t *testing.T) {
	profiles := noopProfileRepo()
	profiles.slugExistsFn = func(context.Context, string) (bool, error) { return true, nil }
	var createdProfile *models.Profile
	users := noopUserRepo()
	users.createWithProfileFn = func(_ context.Context, _ *models.User, profile *models.Profile) error {
		createdProfile = profile
		return nil
	}

	svc := newProfileService(users, profiles, noopFriendRepo(), noopPostRepo(), noopStorage())
	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if createdProfile.Slug == "newuser" || len(createdProfile.Slug) != len("newuser")+1+models.SlugSuffixLength {
		t.Fatalf("expected suffixed slug, got %q", createdProfile.Slug)
	}
}

func TestProfileServiceProfileViewPrivate(t *testing.T) {
	profiles := noopProfileRepo()
	profiles.getBySlugFn = func(context.Context, string) (*models.Profile, error) {
		return &models.Profile{ID: 2, UserID: 7, Private: true}, nil
	}
	profiles.getByUserIDFn = func(context.Context, uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: 3}, nil
	}

	svc := newProfileService(noopUserRepo(), profiles, noopFriendRepo(), noopPostRepo(), noopStorage())
	_, _, err := svc.ProfileView(context.Background(), 3, "private-12345", 20, 0)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestProfileServiceProfileViewPublic(t *testing.T) {
	profiles := noopProfileRepo()
	profiles.getBySlugFn = func(context.Context, string) (*models.Profile, error) {
		return &models.Profile{ID: 2, UserID: 7}, nil
	}
	posts := noopPostRepo()
	posts.getByUserIDFn = func(context.Context, uint, int, int, uint) ([]models.Post, error) {
		return []models.Post{{ID: 1}}, nil
	}

	svc := newProfileService(noopUserRepo(), profiles, noopFriendRepo(), posts, noopStorage())
	profile, got, err := svc.ProfileView(context.Background(), 3, "other-12345", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.UserID != 7 || len(got) != 1 {
		t.Fatalf("unexpected result: %#v %#v", profile, got)
	}
}

func TestProfileServiceUpdateSettingsPasswordChange(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass12"), bcrypt.DefaultCost)
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 3, Password: string(hashed)}, nil
	}
	var updated *models.User
	users.updateFn = func(_ context.Context, user *models.User) error {
		updated = user
		return nil
	}

	svc := newProfileService(users, noopProfileRepo(), noopFriendRepo(), noopPostRepo(), noopStorage())

	t.Run("wrong old password", func(t *testing.T) {
		_, err := svc.UpdateSettings(context.Background(), 3, UpdateSettingsInput{
			OldPassword:             "wrongpass1",
			NewPassword:             "newpass123",
			NewPasswordConfirmation: "newpass123",
		})
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
			t.Fatalf("expected unauthorized app error, got %#v", err)
		}
	})

	t.Run("success rehashes", func(t *testing.T) {
		_, err := svc.UpdateSettings(context.Background(), 3, UpdateSettingsInput{
			OldPassword:             "oldpass12",
			NewPassword:             "newpass123",
			NewPasswordConfirmation: "newpass123",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil || bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpass123")) != nil {
			t.Fatal("password was not rehashed")
		}
	})
}

func TestProfileServiceUpdateSettingsFlags(t *testing.T) {
	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(context.Context, uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: 3, ShowBirthday: true}, nil
	}
	var saved *models.Profile
	profiles.updateFn = func(_ context.Context, profile *models.Profile) error {
		saved = profile
		return nil
	}

	svc := newProfileService(noopUserRepo(), profiles, noopFriendRepo(), noopPostRepo(), noopStorage())
	private := true
	showBirthday := false
	profile, err := svc.UpdateSettings(context.Background(), 3, UpdateSettingsInput{
		Private:      &private,
		ShowBirthday: &showBirthday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || !profile.Private || profile.ShowBirthday {
		t.Fatalf("flags not applied: %#v", profile)
	}
}

func TestProfileServiceDeleteAccount(t *testing.T) {
	edgesCleared := false
	friends := noopFriendRepo()
	friends.removeAllEdgesFn = func(context.Context, uint) error {
		edgesCleared = true
		return nil
	}
	userDeleted := false
	users := noopUserRepo()
	users.deleteFn = func(context.Context, uint) error {
		userDeleted = true
		return nil
	}
	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(context.Context, uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: 3, Picture: "profile_pictures/own.png"}, nil
	}
	posts := noopPostRepo()
	posts.getByUserIDFn = func(context.Context, uint, int, int, uint) ([]models.Post, error) {
		return []models.Post{{ID: 1, Image: "post_images/a.png"}}, nil
	}
	var removed []string
	store := noopStorage()
	store.removeFn = func(ref string) error {
		removed = append(removed, ref)
		return nil
	}

	svc := newProfileService(users, profiles, friends, posts, store)
	if err := svc.DeleteAccount(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !edgesCleared || !userDeleted {
		t.Fatal("edges or user row survived account deletion")
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 media removals, got %v", removed)
	}
}
