package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/careoch/careoch-backend/internal/models"
)

type ResumeService struct {
	DB *gorm.DB
}

func NewResumeService(db *gorm.DB) *ResumeService {
	return &ResumeService{DB: db}
}

// Get returns the user's resume, or nil when none has been saved yet.
func (s *ResumeService) Get(ctx context.Context, userID uint) (*models.Resume, error) {
	if s.DB == nil {
		return nil, nil
	}
	var resume models.Resume
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resume, nil
}

// Save upserts the single resume row for the user.
func (s *ResumeService) Save(ctx context.Context, userID uint, content string) (*models.Resume, error) {
	if s.DB == nil {
		return nil, errors.New("database is not configured")
	}
	var resume models.Resume
	err := s.DB.WithContext(ctx).Where(models.Resume{UserID: userID}).FirstOrCreate(&resume).Error
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&resume).Update("content", content).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}
