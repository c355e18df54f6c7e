package services

import (
	"errors"
	"fmt"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ModerationService carries the admin-gated actions: user role management,
// comment and content moderation, announcements. Every mutation re-checks
// the caller's role via RoleService before touching state, fail-closed.
type ModerationService struct {
	db            *gorm.DB
	roles         *RoleService
	notifications *NotificationService
}

func NewModerationService(db *gorm.DB, roles *RoleService, notifications *NotificationService) *ModerationService {
	return &ModerationService{db: db, roles: roles, notifications: notifications}
}

func (s *ModerationService) ListUsers(callerID uint) ([]models.User, error) {
	if !s.roles.IsAdmin(callerID) {
		return nil, ErrUnauthorized
	}

	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole changes a user's privilege tier. Only the owner may grant
// or revoke roles, and the owner role itself cannot be handed out here.
func (s *ModerationService) UpdateUserRole(targetID uint, role string, callerID uint) error {
	if !s.roles.IsOwner(callerID) {
		return ErrUnauthorized
	}
	if !models.ValidRole(role) || role == models.RoleOwner {
		return errors.New("invalid role")
	}

	var user models.User
	if err := s.db.First(&user, targetID).Error; err != nil {
		return ErrNotFound
	}
	if user.Role == models.RoleOwner {
		return errors.New("cannot change the owner's role")
	}

	user.Role = role
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	s.notify(
		"Role updated",
		fmt.Sprintf("Your account role is now %s", role),
		models.NotificationTypeInfo,
		&targetID,
	)
	return nil
}

func (s *ModerationService) HideComment(commentID, callerID uint) error {
	if !s.roles.HasModerationRights(callerID) {
		return ErrUnauthorized
	}

	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		return ErrNotFound
	}

	comment.Hidden = true
	if err := s.db.Save(&comment).Error; err != nil {
		return err
	}

	s.notify(
		"Comment hidden",
		"One of your comments was hidden by a moderator",
		models.NotificationTypeWarning,
		&comment.AuthorID,
	)
	return nil
}

func (s *ModerationService) DeleteComment(commentID, callerID uint) error {
	if !s.roles.HasModerationRights(callerID) {
		return ErrUnauthorized
	}

	result := s.db.Delete(&models.Comment{}, commentID)
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return result.Error
}

// ListHiddenComments lets moderators review what has been hidden.
func (s *ModerationService) ListHiddenComments(callerID uint) ([]models.Comment, error) {
	if !s.roles.HasModerationRights(callerID) {
		return nil, ErrUnauthorized
	}

	var comments []models.Comment
	if err := s.db.Where("hidden = ?", true).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// RemoveQuiz takes down a quiz regardless of ownership and warns its owner.
func (s *ModerationService) RemoveQuiz(quizID, callerID uint) error {
	if !s.roles.HasModerationRights(callerID) {
		return ErrUnauthorized
	}

	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		return ErrNotFound
	}

	if err := s.db.Delete(&quiz).Error; err != nil {
		return err
	}

	s.notify(
		"Quiz removed",
		fmt.Sprintf("Your quiz %q was removed by a moderator", quiz.Title),
		models.NotificationTypeWarning,
		&quiz.OwnerID,
	)
	return nil
}

func (s *ModerationService) CreateAnnouncement(callerID uint, title, body string) (*models.Announcement, error) {
	if !s.roles.HasModerationRights(callerID) {
		return nil, ErrUnauthorized
	}

	announcement := models.Announcement{
		AuthorID: callerID,
		Title:    title,
		Body:     body,
	}
	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, err
	}

	s.notify(title, body, models.NotificationTypeInfo, nil)
	return &announcement, nil
}

// SetAnnouncementPublished retracts or restores an announcement without
// deleting it. Unpublished announcements disappear from the public listing.
func (s *ModerationService) SetAnnouncementPublished(announcementID uint, published bool, callerID uint) error {
	if !s.roles.HasModerationRights(callerID) {
		return ErrUnauthorized
	}

	var announcement models.Announcement
	if err := s.db.First(&announcement, announcementID).Error; err != nil {
		return ErrNotFound
	}

	announcement.Published = published
	return s.db.Save(&announcement).Error
}

func (s *ModerationService) DeleteAnnouncement(announcementID, callerID uint) error {
	if !s.roles.HasModerationRights(callerID) {
		return ErrUnauthorized
	}

	result := s.db.Delete(&models.Announcement{}, announcementID)
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return result.Error
}

func (s *ModerationService) ListAnnouncements() ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := s.db.Where("published = ?", true).
		Order("created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

// notify enqueues best-effort: moderation actions never fail because the
// notification row could not be written.
func (s *ModerationService) notify(title, message, typ string, targetUserID *uint) {
	if err := s.notifications.Enqueue(title, message, typ, targetUserID); err != nil {
		logrus.WithError(err).Warn("moderation notification enqueue failed")
	}
}
