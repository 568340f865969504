package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/careoch/careoch-backend/internal/insights"
	"github.com/careoch/careoch-backend/internal/models"
)

// InsightService is the read-through cache over the industry_insights table.
// A dashboard load reuses a fresh row, regenerates a stale or missing one,
// and persists the result. Insight data is advisory, so every failure on this
// path degrades to "no insights" instead of surfacing an error.
type InsightService struct {
	DB         *gorm.DB
	Generator  *insights.Generator
	RefreshTTL time.Duration
	Logger     *zap.Logger
}

func NewInsightService(db *gorm.DB, gen *insights.Generator, refreshTTL time.Duration, logger *zap.Logger) *InsightService {
	return &InsightService{
		DB:         db,
		Generator:  gen,
		RefreshTTL: refreshTTL,
		Logger:     logger,
	}
}

// GetIndustryInsights returns the current insight record for the user's
// industry, or nil when the user is anonymous, not onboarded, or anything on
// the path fails. It never returns an error.
func (s *InsightService) GetIndustryInsights(ctx context.Context, clerkUserID string) *models.IndustryInsight {
	if clerkUserID == "" {
		return nil
	}
	if s.DB == nil {
		s.Logger.Warn("database is not configured, returning no industry insights")
		return nil
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("clerk_user_id = ?", clerkUserID).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.Logger.Error("look up user for insights", zap.Error(err))
		}
		return nil
	}

	if strings.TrimSpace(user.Industry) == "" {
		// Onboarding incomplete, nothing to show yet
		return nil
	}

	var insight models.IndustryInsight
	err := s.DB.WithContext(ctx).Where("industry = ?", user.Industry).First(&insight).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.createInsight(ctx, user.Industry)
	case err != nil:
		s.Logger.Error("look up industry insight", zap.String("industry", user.Industry), zap.Error(err))
		return nil
	}

	if !time.Now().Before(insight.NextUpdate) {
		return s.refreshInsight(ctx, &insight)
	}
	return &insight
}

// generate picks the AI path when a Gemini client is configured and the
// deterministic fallback otherwise. It always produces a payload.
func (s *InsightService) generate(ctx context.Context, industry string) insights.Insights {
	if !s.Generator.HasModel() {
		s.Logger.Warn("GEMINI_API_KEY is not configured, using fallback insights",
			zap.String("industry", industry))
		return insights.Fallback(industry)
	}
	ins, err := s.Generator.Generate(ctx, industry)
	if err != nil {
		// Only possible on a blank industry, which is checked upstream
		s.Logger.Warn("insight generation rejected input, using fallback",
			zap.String("industry", industry), zap.Error(err))
		return insights.Fallback(industry)
	}
	return ins
}

func (s *InsightService) createInsight(ctx context.Context, industry string) *models.IndustryInsight {
	now := time.Now()
	insight := models.IndustryInsight{
		Industry:    industry,
		LastUpdated: now,
		NextUpdate:  now.Add(s.RefreshTTL),
	}
	insight.ApplyInsights(s.generate(ctx, industry))

	if err := s.DB.WithContext(ctx).Create(&insight).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the first-creation race; serve the winner's row
			var existing models.IndustryInsight
			if e := s.DB.WithContext(ctx).Where("industry = ?", industry).First(&existing).Error; e == nil {
				return &existing
			}
		}
		s.Logger.Error("create industry insight", zap.String("industry", industry), zap.Error(err))
		return nil
	}
	return &insight
}

func (s *InsightService) refreshInsight(ctx context.Context, insight *models.IndustryInsight) *models.IndustryInsight {
	now := time.Now()
	insight.ApplyInsights(s.generate(ctx, insight.Industry))
	insight.LastUpdated = now
	insight.NextUpdate = now.Add(s.RefreshTTL)

	if err := s.DB.WithContext(ctx).Save(insight).Error; err != nil {
		s.Logger.Error("refresh industry insight", zap.String("industry", insight.Industry), zap.Error(err))
		return nil
	}
	return insight
}

// RefreshStale regenerates every insight row whose NextUpdate has passed.
// Run from the scheduler; the request path also refreshes lazily, so this
// only exists to keep dashboards warm between visits.
func (s *InsightService) RefreshStale(ctx context.Context) {
	if s.DB == nil {
		return
	}

	var stale []models.IndustryInsight
	if err := s.DB.WithContext(ctx).Where("next_update <= ?", time.Now()).Find(&stale).Error; err != nil {
		s.Logger.Error("scan stale industry insights", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	s.Logger.Info("refreshing stale industry insights", zap.Int("count", len(stale)))
	for i := range stale {
		s.refreshInsight(ctx, &stale[i])
	}
}
