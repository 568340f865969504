package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careoch/careoch-backend/internal/auth"
	"github.com/careoch/careoch-backend/internal/services"
)

type DashboardHandler struct {
	Insights *services.InsightService
}

func NewDashboardHandler(insights *services.InsightService) *DashboardHandler {
	return &DashboardHandler{Insights: insights}
}

// GetInsights is the GET /dashboard/insights endpoint. Anonymous requests
// and every degraded branch answer 200 with a null payload — the dashboard
// renders its empty state, it never errors over advisory data.
func (h *DashboardHandler) GetInsights(c *gin.Context) {
	userID, _ := auth.UserID(c)
	insight := h.Insights.GetIndustryInsights(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"insights": insight})
}
