package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reelmates/backend/internal/models"
	"github.com/reelmates/backend/internal/testhelpers"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testhelpers.SetupTestDB(t)
}

// createTestUser inserts a user with a profile and returns the user ID.
func createTestUser(t *testing.T, db *gorm.DB, email, username string) uuid.UUID {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	profile := models.Profile{
		UserID:   user.ID,
		Username: username,
		Email:    email,
	}
	require.NoError(t, db.Create(&profile).Error)

	return user.ID
}
