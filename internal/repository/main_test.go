package repository

import (
	"fmt"
	"os"
	"testing"

	"helenite/internal/database"
	"helenite/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	return db
}

// createUser inserts a user plus its profile and returns the user with the
// profile attached.
func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed-password",
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.Profile{
		UserID:     user.ID,
		FirstName:  "Test",
		LastName:   username,
		BirthPlace: "Testville",
		Slug:       fmt.Sprintf("%s-%05d", username, user.ID),
		Picture:    models.DefaultPicture,
	}
	require.NoError(t, db.Create(profile).Error)

	user.Profile = profile
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, text string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Text: text}
	require.NoError(t, db.Create(post).Error)
	return post
}
