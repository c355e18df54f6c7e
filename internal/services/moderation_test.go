package services

import (
	"testing"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserRoleOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, NewRoleService(db), NewNotificationService(db))

	owner := createUser(t, db, "owner", models.RoleOwner)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	target := createUser(t, db, "target", models.RoleUser)

	// Admins cannot grant roles, only the owner can.
	err := svc.UpdateUserRole(target.ID, models.RoleModerator, admin.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.UpdateUserRole(target.ID, models.RoleModerator, owner.ID))

	var updated models.User
	require.NoError(t, db.First(&updated, target.ID).Error)
	assert.Equal(t, models.RoleModerator, updated.Role)

	// The target gets a targeted notification.
	var n models.Notification
	require.NoError(t, db.Where("target_user_id = ?", target.ID).First(&n).Error)
	assert.Contains(t, n.Message, models.RoleModerator)
}

func TestUpdateUserRoleRejectsOwnerGrant(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, NewRoleService(db), NewNotificationService(db))

	owner := createUser(t, db, "owner", models.RoleOwner)
	target := createUser(t, db, "target", models.RoleUser)

	assert.Error(t, svc.UpdateUserRole(target.ID, models.RoleOwner, owner.ID))
	assert.Error(t, svc.UpdateUserRole(target.ID, "superuser", owner.ID))

	// The owner's own role is immutable here.
	assert.Error(t, svc.UpdateUserRole(owner.ID, models.RoleUser, owner.ID))
}

func TestHideCommentNotifiesAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, NewRoleService(db), NewNotificationService(db))

	mod := createUser(t, db, "mod", models.RoleModerator)
	author := createUser(t, db, "author", models.RoleUser)
	quiz := createQuiz(t, db, author.ID, "Quiz", true)

	comment := models.Comment{QuizID: quiz.ID, AuthorID: author.ID, Body: "spam"}
	require.NoError(t, db.Create(&comment).Error)

	require.NoError(t, svc.HideComment(comment.ID, mod.ID))

	var hidden models.Comment
	require.NoError(t, db.First(&hidden, comment.ID).Error)
	assert.True(t, hidden.Hidden)

	var n models.Notification
	require.NoError(t, db.Where("target_user_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, models.NotificationTypeWarning, n.Type)
}

func TestModerationDeniesPlainUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, NewRoleService(db), NewNotificationService(db))

	user := createUser(t, db, "user", models.RoleUser)
	author := createUser(t, db, "author", models.RoleUser)
	quiz := createQuiz(t, db, author.ID, "Quiz", true)

	comment := models.Comment{QuizID: quiz.ID, AuthorID: author.ID, Body: "fine"}
	require.NoError(t, db.Create(&comment).Error)

	assert.ErrorIs(t, svc.HideComment(comment.ID, user.ID), ErrUnauthorized)
	assert.ErrorIs(t, svc.DeleteComment(comment.ID, user.ID), ErrUnauthorized)
	assert.ErrorIs(t, svc.RemoveQuiz(quiz.ID, user.ID), ErrUnauthorized)
	_, err := svc.ListUsers(user.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.CreateAnnouncement(user.ID, "t", "b")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRemoveQuizWarnsOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, NewRoleService(db), NewNotificationService(db))

	mod := createUser(t, db, "mod", models.RoleModerator)
	author := createUser(t, db, "author", models.RoleUser)
	quiz := createQuiz(t, db, author.ID, "Bad quiz", true)

	require.NoError(t, svc.RemoveQuiz(quiz.ID, mod.ID))

	var count int64
	db.Model(&models.Quiz{}).Where("id = ?", quiz.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	var n models.Notification
	require.NoError(t, db.Where("target_user_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, models.NotificationTypeWarning, n.Type)
	assert.Contains(t, n.Message, "Bad quiz")
}

func TestCreateAnnouncementBroadcasts(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, NewRoleService(db), NewNotificationService(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)

	announcement, err := svc.CreateAnnouncement(admin.ID, "Maintenance", "Friday night")
	require.NoError(t, err)
	assert.True(t, announcement.Published)

	var n models.Notification
	require.NoError(t, db.First(&n).Error)
	assert.Nil(t, n.TargetUserID)
	assert.Equal(t, "Maintenance", n.Title)

	list, err := svc.ListAnnouncements()
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestSetAnnouncementPublished(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, NewRoleService(db), NewNotificationService(db))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	user := createUser(t, db, "user", models.RoleUser)

	announcement, err := svc.CreateAnnouncement(admin.ID, "Maintenance", "Friday night")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetAnnouncementPublished(announcement.ID, false, user.ID), ErrUnauthorized)

	// Retracting hides it from the public listing without deleting it.
	require.NoError(t, svc.SetAnnouncementPublished(announcement.ID, false, admin.ID))

	list, err := svc.ListAnnouncements()
	require.NoError(t, err)
	assert.Empty(t, list)

	var count int64
	db.Model(&models.Announcement{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Republishing restores it.
	require.NoError(t, svc.SetAnnouncementPublished(announcement.ID, true, admin.ID))

	list, err = svc.ListAnnouncements()
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.ErrorIs(t, svc.SetAnnouncementPublished(9999, false, admin.ID), ErrNotFound)
}
