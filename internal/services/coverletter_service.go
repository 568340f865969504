package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/careoch/careoch-backend/internal/dtos"
	"github.com/careoch/careoch-backend/internal/models"
)

var ErrCoverLetterNotFound = errors.New("cover letter not found")

type CoverLetterService struct {
	DB *gorm.DB
}

func NewCoverLetterService(db *gorm.DB) *CoverLetterService {
	return &CoverLetterService{DB: db}
}

func (s *CoverLetterService) List(ctx context.Context, userID uint) ([]models.CoverLetter, error) {
	if s.DB == nil {
		return []models.CoverLetter{}, nil
	}
	var letters []models.CoverLetter
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&letters).Error
	if err != nil {
		return nil, err
	}
	return letters, nil
}

func (s *CoverLetterService) Create(ctx context.Context, userID uint, req *dtos.CoverLetterRequest) (*models.CoverLetter, error) {
	if s.DB == nil {
		return nil, errors.New("database is not configured")
	}
	letter := &models.CoverLetter{
		UserID:         userID,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Content:        req.Content,
	}
	if err := s.DB.WithContext(ctx).Create(letter).Error; err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *CoverLetterService) Get(ctx context.Context, userID, id uint) (*models.CoverLetter, error) {
	if s.DB == nil {
		return nil, ErrCoverLetterNotFound
	}
	var letter models.CoverLetter
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&letter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoverLetterNotFound
		}
		return nil, err
	}
	return &letter, nil
}

func (s *CoverLetterService) Delete(ctx context.Context, userID, id uint) error {
	if s.DB == nil {
		return ErrCoverLetterNotFound
	}
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.CoverLetter{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCoverLetterNotFound
	}
	return nil
}
