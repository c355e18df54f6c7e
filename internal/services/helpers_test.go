package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. The shared-cache DSN keyed
// by test name keeps every connection of the pool on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.GameSession{},
		&models.Participant{},
		&models.Notification{},
		&models.Comment{},
		&models.Announcement{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createQuiz(t *testing.T, db *gorm.DB, ownerID uint, title string, published bool) *models.Quiz {
	t.Helper()

	quiz := models.Quiz{OwnerID: ownerID, Title: title, Published: published}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}
