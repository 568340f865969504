package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/careoch/careoch-backend/internal/insights"
	"github.com/careoch/careoch-backend/internal/models"
	"github.com/careoch/careoch-backend/internal/services"
)

func newUserService(db *gorm.DB, model *fakeModel) *services.UserService {
	// a typed nil *fakeModel must not become a non-nil llms.Model
	var m llms.Model
	if model != nil {
		m = model
	}
	gen := insights.NewGenerator(m, zap.NewNop())
	return services.NewUserService(db, gen, 10*time.Second, testTTL, zap.NewNop())
}

func TestUpdateProfileUnauthorized(t *testing.T) {
	svc := newUserService(newTestDB(t), nil)

	_, err := svc.UpdateProfile(context.Background(), "", services.ProfileUpdate{Industry: "Technology"})
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestUpdateProfileUserNotFound(t *testing.T) {
	svc := newUserService(newTestDB(t), nil)

	_, err := svc.UpdateProfile(context.Background(), "user_missing", services.ProfileUpdate{Industry: "Technology"})
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUpdateProfileEmptyIndustry(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "user_1", "")
	svc := newUserService(db, nil)

	_, err := svc.UpdateProfile(context.Background(), "user_1", services.ProfileUpdate{Industry: "   "})
	assert.ErrorIs(t, err, insights.ErrEmptyIndustry)
	assert.EqualValues(t, 0, countInsights(t, db, "   "))
}

// First-time onboarding into a new industry with the AI service unreachable:
// the insight row is created from fallback data and the profile fields land.
func TestUpdateProfileCreatesInsightWithFallback(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "user_1", "")
	svc := newUserService(db, nil)

	result, err := svc.UpdateProfile(context.Background(), "user_1", services.ProfileUpdate{
		Industry:   "Healthcare-nursing",
		Experience: 4,
		Bio:        "ICU nurse moving into informatics",
		Skills:     []string{"Triage", "EHR systems"},
	})
	require.NoError(t, err)

	want := insights.Fallback("Healthcare-nursing")
	require.NotNil(t, result.IndustryInsight)
	assert.Equal(t, "Healthcare-nursing", result.IndustryInsight.Industry)
	assert.Equal(t, want.GrowthRate, result.IndustryInsight.GrowthRate)
	assert.Equal(t, want.DemandLevel, result.IndustryInsight.DemandLevel)
	assert.Len(t, result.IndustryInsight.SalaryRange, 5)

	require.NotNil(t, result.UpdatedUser)
	assert.Equal(t, "Healthcare-nursing", result.UpdatedUser.Industry)
	assert.Equal(t, 4, result.UpdatedUser.Experience)
	assert.Equal(t, insights.StringList{"Triage", "EHR systems"}, result.UpdatedUser.Skills)

	assert.EqualValues(t, 1, countInsights(t, db, "Healthcare-nursing"))
}

func TestUpdateProfileReusesExistingInsight(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "user_1", "")

	existing := &models.IndustryInsight{
		Industry:    "Finance-banking",
		GrowthRate:  9,
		LastUpdated: time.Now(),
		NextUpdate:  time.Now().Add(6 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(existing).Error)

	model := &fakeModel{resp: modelJSON}
	svc := newUserService(db, model)

	result, err := svc.UpdateProfile(context.Background(), "user_1", services.ProfileUpdate{Industry: "Finance-banking"})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, result.IndustryInsight.ID)
	assert.Zero(t, model.calls.Load())
	assert.EqualValues(t, 1, countInsights(t, db, "Finance-banking"))
}

// A row for the same industry appearing between the in-transaction lookup and
// the create resolves to the winner's row instead of an error or a duplicate.
func TestUpdateProfileCreationRaceResolvesToWinner(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "user_1", "")

	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("test_race", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "industry_insights" {
			return
		}
		raced = true
		_, execErr := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO industry_insights (industry, growth_rate, last_updated, next_update) VALUES (?, ?, ?, ?)",
			"Technology", 77.0, time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, execErr)
	})
	require.NoError(t, err)

	svc := newUserService(db, nil)
	result, err := svc.UpdateProfile(context.Background(), "user_1", services.ProfileUpdate{Industry: "Technology"})
	require.NoError(t, err)

	assert.True(t, raced)
	assert.Equal(t, float64(77), result.IndustryInsight.GrowthRate)
	assert.EqualValues(t, 1, countInsights(t, db, "Technology"))
}

// A failure at the user-update step rolls back the insight created in the
// same transaction.
func TestUpdateProfileAtomicity(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "user_1", "")

	err := db.Callback().Update().Before("gorm:update").Register("test_fail", func(tx *gorm.DB) {
		if tx.Statement.Table == "users" {
			tx.AddError(gorm.ErrInvalidData)
		}
	})
	require.NoError(t, err)

	svc := newUserService(db, nil)
	_, err = svc.UpdateProfile(context.Background(), "user_1", services.ProfileUpdate{Industry: "Technology"})
	require.ErrorIs(t, err, services.ErrUpdateFailed)

	assert.EqualValues(t, 0, countInsights(t, db, "Technology"))

	var user models.User
	require.NoError(t, db.Where("clerk_user_id = ?", "user_1").First(&user).Error)
	assert.Empty(t, user.Industry)
}

// Two users onboarding into the same new industry at once end up sharing one
// insight row.
func TestUpdateProfileConcurrentSameIndustry(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "user_1", "")
	createUser(t, db, "user_2", "")

	svc := newUserService(db, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{"user_1", "user_2"} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = svc.UpdateProfile(context.Background(), id, services.ProfileUpdate{Industry: "Technology"})
		}(i, id)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.EqualValues(t, 1, countInsights(t, db, "Technology"))
}

func TestEnsureUserCreatesThenReuses(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db, nil)

	created := svc.EnsureUser(context.Background(), "user_9", "Dana", "dana@example.com", "")
	require.NotNil(t, created)
	assert.Equal(t, "Dana", created.Name)

	again := svc.EnsureUser(context.Background(), "user_9", "Someone Else", "other@example.com", "")
	require.NotNil(t, again)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "Dana", again.Name)
}

func TestEnsureUserDefaultsName(t *testing.T) {
	svc := newUserService(newTestDB(t), nil)
	user := svc.EnsureUser(context.Background(), "user_10", "   ", "x@example.com", "")
	require.NotNil(t, user)
	assert.Equal(t, "User", user.Name)
}

func TestEnsureUserDegraded(t *testing.T) {
	svc := newUserService(nil, nil)
	assert.Nil(t, svc.EnsureUser(context.Background(), "user_1", "Dana", "", ""))
	assert.Nil(t, svc.EnsureUser(context.Background(), "", "Dana", "", ""))
}

func TestIsOnboarded(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "onboarded", "Technology")
	createUser(t, db, "fresh", "")

	svc := newUserService(db, nil)
	ctx := context.Background()

	assert.True(t, svc.IsOnboarded(ctx, "onboarded"))
	assert.False(t, svc.IsOnboarded(ctx, "fresh"))
	assert.False(t, svc.IsOnboarded(ctx, "missing"))
	assert.False(t, svc.IsOnboarded(ctx, ""))

	degraded := newUserService(nil, nil)
	assert.False(t, degraded.IsOnboarded(ctx, "onboarded"))
}
