package services_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/careoch/careoch-backend/internal/models"
)

// newTestDB opens a file-backed sqlite database for one test. A single
// connection serializes transactions, and TranslateError is on so unique
// violations surface as gorm.ErrDuplicatedKey exactly like Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.IndustryInsight{},
		&models.Resume{},
		&models.CoverLetter{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, clerkID, industry string) *models.User {
	t.Helper()
	user := &models.User{
		ClerkUserID: clerkID,
		Name:        "Test User",
		Email:       clerkID + "@example.com",
		Industry:    industry,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func countInsights(t *testing.T, db *gorm.DB, industry string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.IndustryInsight{}).Where("industry = ?", industry).Count(&n).Error)
	return n
}

// fakeModel is a counting test double for the injected llms.Model.
type fakeModel struct {
	resp  string
	err   error
	calls atomic.Int32
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.resp}},
	}, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	f.calls.Add(1)
	return f.resp, f.err
}

const modelJSON = `{
	"salaryRange": [
		{"role": "Staff Engineer", "min": 120000, "max": 200000, "median": 160000, "location": "US"},
		{"role": "Engineering Manager", "min": 140000, "max": 220000, "median": 180000, "location": "US"}
	],
	"growthRate": 18,
	"demandLevel": "HIGH",
	"topSkills": ["Go", "Postgres", "Kubernetes", "gRPC", "Terraform"],
	"marketOutlook": "POSITIVE",
	"keyTrends": ["AI tooling", "Platform engineering"],
	"recommendedSkills": ["System design", "Observability"]
}`
