package services

import (
	"errors"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) AddComment(quizID, authorID uint, body string) (*models.Comment, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND published = ?", quizID, true).First(&quiz).Error; err != nil {
		return nil, errors.New("quiz not found")
	}

	comment := models.Comment{
		QuizID:   quizID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListForQuiz returns visible comments on a quiz, oldest first. Hidden
// comments are only shown to moderators via the admin listing.
func (s *CommentService) ListForQuiz(quizID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("quiz_id = ? AND hidden = ?", quizID, false).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
