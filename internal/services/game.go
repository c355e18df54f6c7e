package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// pinAttempts bounds the search for a free join PIN. The keyspace is
// 1,000,000 codes and a PIN is only blocked while a session holding it is
// not finished, so hitting the bound means the store is effectively full.
const pinAttempts = 25

type GameService struct {
	db            *gorm.DB
	roles         *RoleService
	notifications *NotificationService
}

func NewGameService(db *gorm.DB, roles *RoleService, notifications *NotificationService) *GameService {
	return &GameService{db: db, roles: roles, notifications: notifications}
}

// CreateGame inserts a waiting session for the given quiz with a fresh
// 6-digit PIN and advertises it with a best-effort broadcast notification.
// The quiz row is only consulted for the notification text; a missing quiz
// degrades the title to a placeholder instead of failing the create.
func (s *GameService) CreateGame(quizID, hostID uint, isPreview bool) (*models.GameSession, error) {
	pin, err := s.generateUniquePin()
	if err != nil {
		return nil, err
	}

	session := models.GameSession{
		QuizID:    quizID,
		HostID:    hostID,
		Pin:       pin,
		Status:    models.GameStatusWaiting,
		IsPreview: isPreview,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCreationFailed, err)
	}

	title := "a quiz"
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err == nil {
		title = quiz.Title
	}

	notifyErr := s.notifications.Enqueue(
		"New game started",
		fmt.Sprintf("%s is live, join with PIN %s", title, pin),
		models.NotificationTypeInfo,
		nil,
	)
	if notifyErr != nil {
		logrus.WithError(notifyErr).WithField("session_id", session.ID).
			Warn("game notification enqueue failed")
	}

	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"quiz_id":    quizID,
		"host_id":    hostID,
		"pin":        pin,
	}).Info("game created")

	return &session, nil
}

// ResolveByPin returns the newest session holding the PIN that has not
// finished yet. Finished sessions release their PIN for reuse.
func (s *GameService) ResolveByPin(pin string) (*models.GameSession, error) {
	var session models.GameSession
	err := s.db.Where("pin = ? AND status != ?", pin, models.GameStatusFinished).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &session, nil
}

// StartGame moves a waiting session to active. Only the host may start.
func (s *GameService) StartGame(sessionID, callerID uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, ErrNotFound
	}
	if session.HostID != callerID {
		return nil, ErrUnauthorized
	}
	if session.Status != models.GameStatusWaiting {
		return nil, fmt.Errorf("%w: game is %s", ErrSessionUpdateFailed, session.Status)
	}

	session.Status = models.GameStatusActive
	if err := s.db.Save(&session).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionUpdateFailed, err)
	}
	return &session, nil
}

// EndGame moves a session to finished and stamps ended_at, from any status.
// Ending an already-finished session succeeds and re-stamps ended_at. The
// caller must be the session host or hold moderation rights.
func (s *GameService) EndGame(sessionID, callerID uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, ErrNotFound
	}
	if session.HostID != callerID && !s.roles.HasModerationRights(callerID) {
		return nil, ErrUnauthorized
	}

	now := time.Now()
	session.Status = models.GameStatusFinished
	session.EndedAt = &now
	if err := s.db.Save(&session).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionUpdateFailed, err)
	}
	return &session, nil
}

func (s *GameService) GetGame(sessionID uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.db.Preload("Quiz").First(&session, sessionID).Error; err != nil {
		return nil, ErrNotFound
	}
	return &session, nil
}

// CountActiveGames counts the host's waiting and active sessions. Preview
// sessions never count. Recomputed on every call, not maintained
// incrementally.
func (s *GameService) CountActiveGames(hostID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.GameSession{}).
		Where("host_id = ? AND status IN ? AND is_preview = ?",
			hostID, []string{models.GameStatusWaiting, models.GameStatusActive}, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *GameService) ListActiveGames(hostID uint) ([]GameSummary, error) {
	var sessions []models.GameSession
	err := s.db.Where("host_id = ? AND status IN ? AND is_preview = ?",
		hostID, []string{models.GameStatusWaiting, models.GameStatusActive}, false).
		Preload("Quiz").
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	result := make([]GameSummary, 0, len(sessions))
	for _, sess := range sessions {
		var participantCount int64
		s.db.Model(&models.Participant{}).Where("session_id = ?", sess.ID).Count(&participantCount)

		result = append(result, GameSummary{
			ID:               sess.ID,
			QuizTitle:        sess.Quiz.Title,
			Pin:              sess.Pin,
			Status:           sess.Status,
			ParticipantCount: int(participantCount),
			CreatedAt:        sess.CreatedAt,
		})
	}
	return result, nil
}

// JoinGame resolves a PIN and enrols a participant. A guest token from a
// previous join lets a player rejoin the same session without creating a
// duplicate row.
func (s *GameService) JoinGame(pin, nickname, guestToken string) (*JoinResult, error) {
	session, err := s.ResolveByPin(pin)
	if err != nil {
		return nil, err
	}

	if guestToken != "" {
		var existing models.Participant
		if err := s.db.Where("session_id = ? AND guest_token = ?", session.ID, guestToken).
			First(&existing).Error; err == nil {
			return &JoinResult{SessionID: session.ID, Participant: existing, IsRejoin: true}, nil
		}
	}

	token := uuid.NewString()
	participant := models.Participant{
		SessionID:  session.ID,
		Nickname:   nickname,
		GuestToken: token,
		JoinedAt:   time.Now(),
	}
	if err := s.db.Create(&participant).Error; err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	return &JoinResult{SessionID: session.ID, Participant: participant}, nil
}

func (s *GameService) generateUniquePin() (string, error) {
	for i := 0; i < pinAttempts; i++ {
		pin := fmt.Sprintf("%06d", rand.Intn(1000000))
		var count int64
		s.db.Model(&models.GameSession{}).
			Where("pin = ? AND status != ?", pin, models.GameStatusFinished).
			Count(&count)
		if count == 0 {
			return pin, nil
		}
	}
	return "", fmt.Errorf("%w: no free pin after %d attempts", ErrSessionCreationFailed, pinAttempts)
}

type GameSummary struct {
	ID               uint      `json:"id"`
	QuizTitle        string    `json:"quiz_title"`
	Pin              string    `json:"pin"`
	Status           string    `json:"status"`
	ParticipantCount int       `json:"participant_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type JoinResult struct {
	SessionID   uint               `json:"session_id"`
	Participant models.Participant `json:"participant"`
	IsRejoin    bool               `json:"is_rejoin"`
}
