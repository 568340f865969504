package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careoch/careoch-backend/internal/auth"
	"github.com/careoch/careoch-backend/internal/dtos"
	"github.com/careoch/careoch-backend/internal/models"
	"github.com/careoch/careoch-backend/internal/services"
)

type ResumeHandler struct {
	Users   *services.UserService
	Resumes *services.ResumeService
}

func NewResumeHandler(users *services.UserService, resumes *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{Users: users, Resumes: resumes}
}

// requireUser resolves the request identity to a profile row, writing the
// error response itself when that fails.
func requireUser(c *gin.Context, users *services.UserService) (*models.User, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}
	user, err := users.FindByClerkID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return user, true
}

func (h *ResumeHandler) GetResume(c *gin.Context) {
	user, ok := requireUser(c, h.Users)
	if !ok {
		return
	}
	resume, err := h.Resumes.Get(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resume": resume})
}

func (h *ResumeHandler) SaveResume(c *gin.Context) {
	user, ok := requireUser(c, h.Users)
	if !ok {
		return
	}
	var req dtos.SaveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resume, err := h.Resumes.Save(c.Request.Context(), user.ID, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resume": resume})
}
