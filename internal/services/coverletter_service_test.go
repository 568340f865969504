package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careoch/careoch-backend/internal/dtos"
	"github.com/careoch/careoch-backend/internal/services"
)

func TestCoverLetterCRUD(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user_1", "Technology")
	other := createUser(t, db, "user_2", "Technology")

	svc := services.NewCoverLetterService(db)
	ctx := context.Background()

	letter, err := svc.Create(ctx, user.ID, &dtos.CoverLetterRequest{
		CompanyName: "Stripe",
		JobTitle:    "Backend Engineer",
		Content:     "Dear hiring team,",
	})
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, user.ID, letter.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", fetched.Status)
	assert.Equal(t, "Stripe", fetched.CompanyName)

	letters, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, letters, 1)

	// another user's letters are invisible
	_, err = svc.Get(ctx, other.ID, letter.ID)
	assert.ErrorIs(t, err, services.ErrCoverLetterNotFound)
	err = svc.Delete(ctx, other.ID, letter.ID)
	assert.ErrorIs(t, err, services.ErrCoverLetterNotFound)

	require.NoError(t, svc.Delete(ctx, user.ID, letter.ID))
	_, err = svc.Get(ctx, user.ID, letter.ID)
	assert.ErrorIs(t, err, services.ErrCoverLetterNotFound)
}

func TestResumeUpsert(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user_1", "Technology")

	svc := services.NewResumeService(db)
	ctx := context.Background()

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	first, err := svc.Save(ctx, user.ID, "v1")
	require.NoError(t, err)

	second, err := svc.Save(ctx, user.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v2", got.Content)
}
