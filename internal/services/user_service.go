package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/careoch/careoch-backend/internal/insights"
	"github.com/careoch/careoch-backend/internal/models"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserNotFound = errors.New("user not found")
	// ErrUpdateFailed wraps any transaction-level failure of UpdateProfile.
	ErrUpdateFailed = errors.New("failed to update profile")
)

// ProfileUpdate is the onboarding form payload.
type ProfileUpdate struct {
	Industry   string
	Experience int
	Bio        string
	Skills     []string
}

// UpdateResult bundles the two rows an onboarding update touches.
type UpdateResult struct {
	IndustryInsight *models.IndustryInsight `json:"industry_insight"`
	UpdatedUser     *models.User            `json:"updated_user"`
}

// UserService owns the user profile: lazy provisioning after sign-in,
// onboarding status, and the transactional profile update that also
// guarantees an insight row exists for the chosen industry.
type UserService struct {
	DB         *gorm.DB
	Generator  *insights.Generator
	TxTimeout  time.Duration
	RefreshTTL time.Duration
	Logger     *zap.Logger
}

func NewUserService(db *gorm.DB, gen *insights.Generator, txTimeout, refreshTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		DB:         db,
		Generator:  gen,
		TxTimeout:  txTimeout,
		RefreshTTL: refreshTTL,
		Logger:     logger,
	}
}

// FindByClerkID resolves an identity to its profile row.
func (s *UserService) FindByClerkID(ctx context.Context, clerkUserID string) (*models.User, error) {
	if clerkUserID == "" {
		return nil, ErrUnauthorized
	}
	if s.DB == nil {
		return nil, ErrUserNotFound
	}
	var user models.User
	if err := s.DB.WithContext(ctx).Where("clerk_user_id = ?", clerkUserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EnsureUser finds or creates the profile row for a freshly signed-in
// identity. Returns nil without error in degraded mode or on failure — the
// caller is the post-sign-in sync, which must never block the app.
func (s *UserService) EnsureUser(ctx context.Context, clerkUserID, name, email, imageURL string) *models.User {
	if clerkUserID == "" {
		return nil
	}
	if s.DB == nil {
		s.Logger.Warn("database is not configured, skipping user sync")
		return nil
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("clerk_user_id = ?", clerkUserID).First(&user).Error
	if err == nil {
		return &user
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.Logger.Error("look up user", zap.Error(err))
		return nil
	}

	if strings.TrimSpace(name) == "" {
		name = "User"
	}
	user = models.User{
		ClerkUserID: clerkUserID,
		Name:        name,
		Email:       email,
		ImageURL:    imageURL,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A parallel sync created it first
			if e := s.DB.WithContext(ctx).Where("clerk_user_id = ?", clerkUserID).First(&user).Error; e == nil {
				return &user
			}
		}
		s.Logger.Error("create user", zap.Error(err))
		return nil
	}
	return &user
}

// IsOnboarded reports whether the user has completed onboarding, which means
// an industry is set. Anonymous, missing, or unreachable all read as false.
func (s *UserService) IsOnboarded(ctx context.Context, clerkUserID string) bool {
	if clerkUserID == "" || s.DB == nil {
		return false
	}
	var user models.User
	if err := s.DB.WithContext(ctx).Select("industry").Where("clerk_user_id = ?", clerkUserID).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.Logger.Error("check onboarding status", zap.Error(err))
		}
		return false
	}
	return strings.TrimSpace(user.Industry) != ""
}

// UpdateProfile applies the submitted profile fields and guarantees an
// IndustryInsight row exists for the submitted industry, as one atomic
// transaction. The transaction timeout is generous because a first update
// into a new industry holds it open across the Gemini call.
//
// Errors: ErrUnauthorized, ErrUserNotFound, insights.ErrEmptyIndustry, or
// ErrUpdateFailed wrapping the underlying cause. Nothing is committed on
// failure.
func (s *UserService) UpdateProfile(ctx context.Context, clerkUserID string, data ProfileUpdate) (*UpdateResult, error) {
	if clerkUserID == "" {
		return nil, ErrUnauthorized
	}
	if s.DB == nil {
		return nil, fmt.Errorf("%w: database is not configured", ErrUpdateFailed)
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("clerk_user_id = ?", clerkUserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}

	txCtx, cancel := context.WithTimeout(ctx, s.TxTimeout)
	defer cancel()

	var result UpdateResult
	err := s.DB.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		insight, err := s.ensureInsight(txCtx, tx, data.Industry)
		if err != nil {
			return err
		}

		updates := map[string]any{
			"industry":   data.Industry,
			"experience": data.Experience,
			"bio":        data.Bio,
			"skills":     insights.StringList(data.Skills),
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.First(&user, user.ID).Error; err != nil {
			return err
		}

		result.IndustryInsight = insight
		result.UpdatedUser = &user
		return nil
	})
	if err != nil {
		if errors.Is(err, insights.ErrEmptyIndustry) {
			return nil, err
		}
		s.Logger.Error("update user profile", zap.String("industry", data.Industry), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return &result, nil
}

// ensureInsight returns the insight row for the industry, creating it inside
// the surrounding transaction when absent. A concurrent creation of the same
// industry surfaces as a duplicate-key error, which resolves to the winner's
// row so the one-row-per-industry invariant holds.
func (s *UserService) ensureInsight(ctx context.Context, tx *gorm.DB, industry string) (*models.IndustryInsight, error) {
	var insight models.IndustryInsight
	err := tx.Where("industry = ?", industry).First(&insight).Error
	if err == nil {
		return &insight, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if strings.TrimSpace(industry) == "" {
		return nil, insights.ErrEmptyIndustry
	}

	ins, genErr := s.Generator.Generate(ctx, industry)
	if genErr != nil {
		// Generate promises to only fail on blank input, but a violated
		// contract must not sink the whole profile update
		s.Logger.Warn("insight generation failed, using fallback",
			zap.String("industry", industry), zap.Error(genErr))
		ins = insights.Fallback(industry)
	}

	now := time.Now()
	insight = models.IndustryInsight{
		Industry:    industry,
		LastUpdated: now,
		NextUpdate:  now.Add(s.RefreshTTL),
	}
	insight.ApplyInsights(ins)

	if err := tx.Create(&insight).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.IndustryInsight
			if e := tx.Where("industry = ?", industry).First(&existing).Error; e == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &insight, nil
}
