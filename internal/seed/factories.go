// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"helenite/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the password every generated account gets.
const SeedPassword = "password123"

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db             *gorm.DB
	hashedPassword string
}

// NewFactory creates a new Factory bound to the provided Gorm DB. The shared
// password is hashed once; bcrypt per generated user would dominate seeding
// time.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hashed, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	return &Factory{db: db, hashedPassword: string(hashed)}
}

// CreateUser constructs and persists a user together with its profile.
// Optional override functions may modify the generated profile before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User, *models.Profile)) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := strings.ToLower(fmt.Sprintf("%s%s%d", first, last, gofakeit.Number(10, 999)))

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		Password: f.hashedPassword,
	}
	profile := &models.Profile{
		FirstName:    first,
		LastName:     last,
		Birthday:     gofakeit.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)),
		BirthPlace:   gofakeit.City(),
		Slug:         models.Slugify(username),
		Picture:      models.DefaultPicture,
		Private:      gofakeit.Number(0, 9) < 2,
		ShowBirthday: gofakeit.Bool(),
	}

	for _, override := range overrides {
		override(user, profile)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

// CreatePost constructs and persists a post for the given user with a
// realistic published_at spread over the past few months.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:      user.ID,
		Text:        truncate(gofakeit.Sentence(gofakeit.Number(4, 25)), 300),
		PublishedAt: time.Now().Add(-time.Duration(gofakeit.Number(0, 90*24)) * time.Hour),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on the provided post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		UserID: user.ID,
		PostID: post.ID,
		Text:   truncate(gofakeit.Sentence(gofakeit.Number(3, 12)), 500),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post. Duplicate likes are skipped.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// CreateFriendship writes both directions of a friendship edge between the
// two profiles in one transaction, matching how the application stores it.
func (f *Factory) CreateFriendship(a, b *models.Profile) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		return tx.Exec(
			"INSERT INTO profile_friends (profile_id, friend_id) VALUES (?, ?), (?, ?)",
			a.ID, b.ID, b.ID, a.ID,
		).Error
	})
}

// CreatePendingRequest persists an unanswered friend request.
func (f *Factory) CreatePendingRequest(requester, recipient *models.User) (*models.FriendRequest, error) {
	request := &models.FriendRequest{
		RequesterID: requester.ID,
		RecipientID: recipient.ID,
	}
	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
