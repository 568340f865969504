package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careoch/careoch-backend/internal/auth"
	"github.com/careoch/careoch-backend/internal/dtos"
	"github.com/careoch/careoch-backend/internal/insights"
	"github.com/careoch/careoch-backend/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// SyncUser is the POST /users/sync endpoint, called after sign-in. It lazily
// provisions the profile row; a nil user in the response means degraded mode.
func (h *UserHandler) SyncUser(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dtos.SyncUserRequest
	// Body is optional; ignore bind failures on an empty body
	_ = c.ShouldBindJSON(&req)

	user := h.Users.EnsureUser(c.Request.Context(), userID, req.Name, req.Email, req.ImageURL)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// OnboardingStatus is the GET /users/me/onboarding endpoint.
func (h *UserHandler) OnboardingStatus(c *gin.Context) {
	userID, _ := auth.UserID(c)
	c.JSON(http.StatusOK, gin.H{
		"is_onboarded": h.Users.IsOnboarded(c.Request.Context(), userID),
	})
}

// UpdateProfile is the PUT /users/me/profile endpoint backing the onboarding
// form. Unlike the dashboard read path this surfaces failures: it is a
// user-initiated write and must not silently drop data.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dtos.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	result, err := h.Users.UpdateProfile(c.Request.Context(), userID, services.ProfileUpdate{
		Industry:   req.Industry,
		Experience: req.Experience,
		Bio:        req.Bio,
		Skills:     req.Skills,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, insights.ErrEmptyIndustry):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"industry_insight": result.IndustryInsight,
		"updated_user":     result.UpdatedUser,
	})
}
