package handlers

import (
	"errors"
	"net/http"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"
	"github.com/coderhafiz/Murajiah-sub001/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Quiz = models.Quiz
type Question = models.Question
type GameSession = models.GameSession
type Notification = models.Notification
type Announcement = models.Announcement
type Comment = models.Comment
type User = models.User

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
