package handlers

import (
	"net/http"
	"strconv"

	"github.com/coderhafiz/Murajiah-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	moderationService *services.ModerationService
}

func NewAdminHandler(moderationService *services.ModerationService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService}
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required" example:"moderator"`
}

type PublishAnnouncementRequest struct {
	Published *bool `json:"published" binding:"required" example:"false"`
}

type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255" example:"Scheduled maintenance"`
	Body  string `json:"body" binding:"required" example:"The platform will be read-only on Friday night."`
}

// ListUsers godoc
// @Summary      List users
// @Description  All user accounts with their roles; admin only
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} User
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.moderationService.ListUsers(c.GetUint("user_id"))
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUserRole godoc
// @Summary      Change a user's role
// @Description  Grant or revoke admin/moderator; owner only
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body UpdateRoleRequest true "New role"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.moderationService.UpdateUserRole(uint(targetID), req.Role, c.GetUint("user_id")); err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "role updated"})
}

// HideComment godoc
// @Summary      Hide a comment
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/comments/{id}/hide [post]
func (h *AdminHandler) HideComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment id"})
		return
	}

	if err := h.moderationService.HideComment(uint(commentID), c.GetUint("user_id")); err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "comment hidden"})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/comments/{id} [delete]
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment id"})
		return
	}

	if err := h.moderationService.DeleteComment(uint(commentID), c.GetUint("user_id")); err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "comment deleted"})
}

// ListHiddenComments godoc
// @Summary      List hidden comments
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Comment
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/comments/hidden [get]
func (h *AdminHandler) ListHiddenComments(c *gin.Context) {
	comments, err := h.moderationService.ListHiddenComments(c.GetUint("user_id"))
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// RemoveQuiz godoc
// @Summary      Remove a quiz
// @Description  Take down any quiz and warn its owner
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/quizzes/{id} [delete]
func (h *AdminHandler) RemoveQuiz(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	if err := h.moderationService.RemoveQuiz(uint(quizID), c.GetUint("user_id")); err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "quiz removed"})
}

// CreateAnnouncement godoc
// @Summary      Create an announcement
// @Description  Publish an announcement and broadcast a notification
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateAnnouncementRequest true "Announcement data"
// @Success      201 {object} Announcement
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/announcements [post]
func (h *AdminHandler) CreateAnnouncement(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	announcement, err := h.moderationService.CreateAnnouncement(c.GetUint("user_id"), req.Title, req.Body)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// PublishAnnouncement godoc
// @Summary      Publish or retract an announcement
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Announcement ID"
// @Param        request body PublishAnnouncementRequest true "Published flag"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/announcements/{id}/publish [put]
func (h *AdminHandler) PublishAnnouncement(c *gin.Context) {
	announcementID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid announcement id"})
		return
	}

	var req PublishAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.moderationService.SetAnnouncementPublished(uint(announcementID), *req.Published, c.GetUint("user_id")); err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "announcement updated"})
}

// DeleteAnnouncement godoc
// @Summary      Delete an announcement
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Announcement ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/announcements/{id} [delete]
func (h *AdminHandler) DeleteAnnouncement(c *gin.Context) {
	announcementID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid announcement id"})
		return
	}

	if err := h.moderationService.DeleteAnnouncement(uint(announcementID), c.GetUint("user_id")); err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "announcement deleted"})
}

// ListAnnouncements godoc
// @Summary      List announcements
// @Description  Published announcements, newest first; public
// @Tags         announcements
// @Produce      json
// @Success      200 {array} Announcement
// @Router       /api/v1/announcements [get]
func (h *AdminHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.moderationService.ListAnnouncements()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, announcements)
}
