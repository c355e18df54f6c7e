package services

import (
	"errors"
	"strings"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

// Browse lists published quizzes, optionally filtered by a case-insensitive
// title search.
func (s *QuizService) Browse(query string) ([]models.Quiz, error) {
	tx := s.db.Where("published = ?", true)
	if query != "" {
		tx = tx.Where("lower(title) LIKE ?", "%"+strings.ToLower(query)+"%")
	}

	var quizzes []models.Quiz
	if err := tx.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *QuizService) GetQuizzesByOwner(ownerID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Where("owner_id = ?", ownerID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options").
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *QuizService) CreateQuiz(ownerID uint, title, description string) (*models.Quiz, error) {
	quiz := models.Quiz{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
	}
	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) GetQuizByID(quizID, ownerID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND owner_id = ?", quizID, ownerID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options").
		First(&quiz).Error
	if err != nil {
		return nil, errors.New("quiz not found")
	}
	return &quiz, nil
}

// GetPublicQuiz returns a published quiz with its questions. Options are
// not preloaded here so answer flags never leak through the public route.
func (s *QuizService) GetPublicQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND published = ?", quizID, true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&quiz).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &quiz, nil
}

func (s *QuizService) UpdateQuiz(quizID, ownerID uint, title, description string, published *bool) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND owner_id = ?", quizID, ownerID).First(&quiz).Error; err != nil {
		return nil, errors.New("quiz not found")
	}

	if title != "" {
		quiz.Title = title
	}
	quiz.Description = description
	if published != nil {
		quiz.Published = *published
	}
	if err := s.db.Save(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) DeleteQuiz(quizID, ownerID uint) error {
	result := s.db.Where("id = ? AND owner_id = ?", quizID, ownerID).Delete(&models.Quiz{})
	if result.RowsAffected == 0 {
		return errors.New("quiz not found")
	}
	return result.Error
}

func (s *QuizService) AddQuestion(quizID, ownerID uint, text string, options []models.Option) (*models.Question, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND owner_id = ?", quizID, ownerID).First(&quiz).Error; err != nil {
		return nil, errors.New("quiz not found")
	}

	var maxOrder int
	s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).
		Select("COALESCE(MAX(order_num), 0)").Scan(&maxOrder)

	question := models.Question{
		QuizID:   quizID,
		Text:     text,
		OrderNum: maxOrder + 1,
		Options:  options,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuizService) DeleteQuestion(questionID, ownerID uint) error {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return errors.New("question not found")
	}

	var quiz models.Quiz
	if err := s.db.Where("id = ? AND owner_id = ?", question.QuizID, ownerID).First(&quiz).Error; err != nil {
		return errors.New("question not found")
	}

	s.db.Where("question_id = ?", questionID).Delete(&models.Option{})
	return s.db.Delete(&question).Error
}
