package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careoch/careoch-backend/internal/dtos"
	"github.com/careoch/careoch-backend/internal/services"
)

type CoverLetterHandler struct {
	Users   *services.UserService
	Letters *services.CoverLetterService
}

func NewCoverLetterHandler(users *services.UserService, letters *services.CoverLetterService) *CoverLetterHandler {
	return &CoverLetterHandler{Users: users, Letters: letters}
}

func (h *CoverLetterHandler) List(c *gin.Context) {
	user, ok := requireUser(c, h.Users)
	if !ok {
		return
	}
	letters, err := h.Letters.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cover letters: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cover_letters": letters})
}

func (h *CoverLetterHandler) Create(c *gin.Context) {
	user, ok := requireUser(c, h.Users)
	if !ok {
		return
	}
	var req dtos.CoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	letter, err := h.Letters.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cover letter: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, letter)
}

func (h *CoverLetterHandler) Get(c *gin.Context) {
	user, ok := requireUser(c, h.Users)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cover letter id"})
		return
	}
	letter, err := h.Letters.Get(c.Request.Context(), user.ID, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCoverLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cover letter not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, letter)
}

func (h *CoverLetterHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c, h.Users)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cover letter id"})
		return
	}
	if err := h.Letters.Delete(c.Request.Context(), user.ID, uint(id)); err != nil {
		if errors.Is(err, services.ErrCoverLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cover letter not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
