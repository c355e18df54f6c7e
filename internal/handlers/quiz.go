package handlers

import (
	"net/http"
	"strconv"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"
	"github.com/coderhafiz/Murajiah-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService    *services.QuizService
	commentService *services.CommentService
}

func NewQuizHandler(quizService *services.QuizService, commentService *services.CommentService) *QuizHandler {
	return &QuizHandler{quizService: quizService, commentService: commentService}
}

type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255" example:"Arabic grammar basics"`
	Description string `json:"description" example:"Revision set for week 3"`
}

type UpdateQuizRequest struct {
	Title       string `json:"title" example:"Arabic grammar basics"`
	Description string `json:"description" example:"Revision set for week 3"`
	Published   *bool  `json:"published" example:"true"`
}

type AddQuestionRequest struct {
	Text    string          `json:"text" binding:"required" example:"Which particle introduces a nominal sentence?"`
	Options []OptionRequest `json:"options" binding:"required,min=2,dive"`
}

type OptionRequest struct {
	Text      string `json:"text" binding:"required" example:"inna"`
	IsCorrect bool   `json:"is_correct" example:"true"`
}

type AddCommentRequest struct {
	Body string `json:"body" binding:"required,min=1" example:"Great revision set"`
}

// Browse godoc
// @Summary      Browse the quiz library
// @Description  List published quizzes, optionally filtered by title search
// @Tags         quizzes
// @Produce      json
// @Param        q query string false "Title search"
// @Success      200 {array} Quiz
// @Router       /api/v1/library [get]
func (h *QuizHandler) Browse(c *gin.Context) {
	quizzes, err := h.quizService.Browse(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// GetPublicQuiz godoc
// @Summary      Get a published quiz
// @Tags         quizzes
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {object} Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/library/{id} [get]
func (h *QuizHandler) GetPublicQuiz(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	quiz, err := h.quizService.GetPublicQuiz(uint(quizID))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "quiz not found"})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ListQuizzes godoc
// @Summary      List own quizzes
// @Description  Get all quizzes owned by the authenticated user
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Quiz
// @Router       /api/v1/quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	ownerID := c.GetUint("user_id")

	quizzes, err := h.quizService.GetQuizzesByOwner(ownerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// CreateQuiz godoc
// @Summary      Create a quiz
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateQuizRequest true "Quiz data"
// @Success      201 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	ownerID := c.GetUint("user_id")

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(ownerID, req.Title, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// GetQuiz godoc
// @Summary      Get own quiz
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	ownerID := c.GetUint("user_id")
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	quiz, err := h.quizService.GetQuizByID(uint(quizID), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// UpdateQuiz godoc
// @Summary      Update a quiz
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Param        request body UpdateQuizRequest true "Quiz data"
// @Success      200 {object} Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	ownerID := c.GetUint("user_id")
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	var req UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(uint(quizID), ownerID, req.Title, req.Description, req.Published)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary      Delete a quiz
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	ownerID := c.GetUint("user_id")
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	if err := h.quizService.DeleteQuiz(uint(quizID), ownerID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "quiz deleted"})
}

// AddQuestion godoc
// @Summary      Add a question
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Param        request body AddQuestionRequest true "Question data"
// @Success      201 {object} Question
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/questions [post]
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	ownerID := c.GetUint("user_id")
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	options := make([]models.Option, len(req.Options))
	for i, o := range req.Options {
		options[i] = models.Option{Text: o.Text, IsCorrect: o.IsCorrect}
	}

	question, err := h.quizService.AddQuestion(uint(quizID), ownerID, req.Text, options)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [delete]
func (h *QuizHandler) DeleteQuestion(c *gin.Context) {
	ownerID := c.GetUint("user_id")
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.quizService.DeleteQuestion(uint(questionID), ownerID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

// ListComments godoc
// @Summary      List quiz comments
// @Description  Visible comments on a published quiz, oldest first
// @Tags         comments
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {array} Comment
// @Router       /api/v1/library/{id}/comments [get]
func (h *QuizHandler) ListComments(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	comments, err := h.commentService.ListForQuiz(uint(quizID))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// AddComment godoc
// @Summary      Comment on a quiz
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Param        request body AddCommentRequest true "Comment data"
// @Success      201 {object} Comment
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/library/{id}/comments [post]
func (h *QuizHandler) AddComment(c *gin.Context) {
	authorID := c.GetUint("user_id")
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	comment, err := h.commentService.AddComment(uint(quizID), authorID, req.Body)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}
