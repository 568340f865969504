package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/careoch/careoch-backend/internal/insights"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identity key issued by the external auth layer
	ClerkUserID string `gorm:"uniqueIndex;not null" json:"clerk_user_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`

	// Onboarding profile. Industry references IndustryInsight.Industry;
	// empty means the user has not completed onboarding yet.
	Industry   string              `gorm:"index" json:"industry"`
	Experience int                 `json:"experience"`
	Bio        string              `gorm:"type:text" json:"bio"`
	Skills     insights.StringList `gorm:"type:jsonb" json:"skills"`
}

// IndustryInsight is the shared advisory record for one industry. Exactly
// one row exists per industry key; every user in that industry reads the
// same row.
type IndustryInsight struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Industry string `gorm:"uniqueIndex;not null" json:"industry"`

	SalaryRange       insights.SalaryRanges  `gorm:"type:jsonb" json:"salary_range"`
	GrowthRate        float64                `json:"growth_rate"`
	DemandLevel       insights.DemandLevel   `json:"demand_level"`
	TopSkills         insights.StringList    `gorm:"type:jsonb" json:"top_skills"`
	MarketOutlook     insights.MarketOutlook `json:"market_outlook"`
	KeyTrends         insights.StringList    `gorm:"type:jsonb" json:"key_trends"`
	RecommendedSkills insights.StringList    `gorm:"type:jsonb" json:"recommended_skills"`

	// The row is stale once time.Now() >= NextUpdate.
	LastUpdated time.Time `json:"last_updated"`
	NextUpdate  time.Time `json:"next_update"`
}

// ApplyInsights copies a generated payload onto the row, leaving the key and
// timestamps for the caller.
func (i *IndustryInsight) ApplyInsights(ins insights.Insights) {
	i.SalaryRange = ins.SalaryRange
	i.GrowthRate = ins.GrowthRate
	i.DemandLevel = ins.DemandLevel
	i.TopSkills = ins.TopSkills
	i.MarketOutlook = ins.MarketOutlook
	i.KeyTrends = ins.KeyTrends
	i.RecommendedSkills = ins.RecommendedSkills
}

// Resume is the one resume document per user.
type Resume struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID  uint   `gorm:"uniqueIndex" json:"user_id"`
	Content string `gorm:"type:text" json:"content"`
}

type CoverLetter struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID         uint   `gorm:"index" json:"user_id"`
	CompanyName    string `gorm:"not null" json:"company_name"`
	JobTitle       string `gorm:"not null" json:"job_title"`
	JobDescription string `gorm:"type:text" json:"job_description"`
	Content        string `gorm:"type:text" json:"content"`
	Status         string `gorm:"default:'draft'" json:"status"`
}
