package postgres_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/dom/daily-diet-api/internal/domain"
	"github.com/dom/daily-diet-api/internal/repository"
	"github.com/dom/daily-diet-api/internal/repository/postgres"
	"github.com/dom/daily-diet-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMealRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMealRepository(testDB.DB)
	ctx := context.Background()

	author := testutil.NewUserBuilder().Build(t, testDB.DB)
	missing := uuid.New()
	now := time.Now()

	tests := []struct {
		name    string
		author  *uuid.UUID
		wantErr error
	}{
		{name: "with author", author: &author.ID},
		{name: "without author", author: nil},
		{name: "unknown author", author: &missing, wantErr: domain.ErrAuthorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meal := &domain.Meal{
				Meal:        "Lunch",
				Description: "Salad",
				Date:        datatypes.Date(now),
				Time:        now,
				Author:      tt.author,
				SessionID:   uuid.NewString(),
			}

			err := repo.Create(ctx, meal)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, meal.ID)
			assert.False(t, meal.BelongsToDiet)
		})
	}
}

func TestMealRepository_GetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMealRepository(testDB.DB)
	ctx := context.Background()

	meal := testutil.NewMealBuilder().WithSession("owner").Build(t, testDB.DB)

	tests := []struct {
		name    string
		id      uuid.UUID
		scope   repository.MealScope
		wantErr error
	}{
		{name: "any session", id: meal.ID},
		{name: "owning session", id: meal.ID, scope: repository.MealScope{SessionID: "owner"}},
		{name: "other session", id: meal.ID, scope: repository.MealScope{SessionID: "intruder"}, wantErr: domain.ErrMealNotFound},
		{name: "unknown id", id: uuid.New(), wantErr: domain.ErrMealNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(ctx, tt.id, tt.scope)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, meal.ID, got.ID)
			assert.Equal(t, "owner", got.SessionID)
		})
	}
}

func TestMealRepository_ListBySession(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMealRepository(testDB.DB)
	ctx := context.Background()

	seeded := testutil.SeedMealPattern(t, testDB.DB, "mine", "TFT")
	testutil.SeedMealPattern(t, testDB.DB, "theirs", "TT")

	meals, err := repo.ListBySession(ctx, "mine")
	require.NoError(t, err)
	require.Len(t, meals, 3)
	for i, m := range meals {
		assert.Equal(t, seeded[i].ID, m.ID, "meals must come back in insertion order")
		assert.Equal(t, "mine", m.SessionID)
	}

	meals, err = repo.ListBySession(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestMealRepository_ListOrderWithEqualTimestamps(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMealRepository(testDB.DB)
	ctx := context.Background()

	at := time.Now().Truncate(time.Microsecond)
	var ids []string
	for i := 0; i < 5; i++ {
		meal := testutil.NewMealBuilder().WithSession("same-instant").At(at).Build(t, testDB.DB)
		ids = append(ids, meal.ID.String())
	}
	sort.Strings(ids)

	for i := 0; i < 3; i++ {
		meals, err := repo.ListBySession(ctx, "same-instant")
		require.NoError(t, err)
		require.Len(t, meals, len(ids))
		for j, m := range meals {
			assert.Equal(t, ids[j], m.ID.String())
		}

		rows, err := repo.ListWithAuthorBySession(ctx, "same-instant")
		require.NoError(t, err)
		require.Len(t, rows, len(ids))
		for j, row := range rows {
			assert.Equal(t, ids[j], row.ID.String())
		}
	}
}

func TestMealRepository_ListWithAuthorBySession(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMealRepository(testDB.DB)
	ctx := context.Background()

	author := testutil.NewUserBuilder().WithName("chef").Build(t, testDB.DB)
	withAuthor := testutil.NewMealBuilder().WithAuthor(author).WithSession("s1").Build(t, testDB.DB)
	time.Sleep(2 * time.Millisecond)
	orphan := testutil.NewMealBuilder().WithSession("s1").Build(t, testDB.DB)
	testutil.NewMealBuilder().WithSession("s2").Build(t, testDB.DB)

	rows, err := repo.ListWithAuthorBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, withAuthor.ID, rows[0].ID)
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, author.ID, *rows[0].UserID)
	require.NotNil(t, rows[0].UserName)
	assert.Equal(t, "chef", *rows[0].UserName)

	assert.Equal(t, orphan.ID, rows[1].ID)
	assert.Nil(t, rows[1].UserID)
	assert.Nil(t, rows[1].UserName)
	assert.Nil(t, rows[1].UserEmail)
}

func TestMealRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMealRepository(testDB.DB)
	ctx := context.Background()

	author := testutil.NewUserBuilder().Build(t, testDB.DB)
	meal := testutil.NewMealBuilder().WithSession("owner").Build(t, testDB.DB)

	t.Run("other session matches nothing", func(t *testing.T) {
		err := repo.Update(ctx, &domain.Meal{ID: meal.ID, Meal: "hijacked", Description: "x"}, repository.MealScope{SessionID: "intruder"})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, meal.ID, repository.MealScope{})
		require.NoError(t, err)
		assert.Equal(t, meal.Meal, got.Meal)
	})

	t.Run("overwrites editable fields", func(t *testing.T) {
		err := repo.Update(ctx, &domain.Meal{
			ID:            meal.ID,
			Meal:          "Dinner",
			Description:   "Soup",
			BelongsToDiet: true,
			Author:        &author.ID,
		}, repository.MealScope{})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, meal.ID, repository.MealScope{})
		require.NoError(t, err)
		assert.Equal(t, "Dinner", got.Meal)
		assert.Equal(t, "Soup", got.Description)
		assert.True(t, got.BelongsToDiet)
		assert.Equal(t, author.ID, *got.Author)
		assert.Equal(t, "owner", got.SessionID)
		assert.True(t, got.UpdatedAt.After(meal.UpdatedAt))
	})

	t.Run("unknown author", func(t *testing.T) {
		missing := uuid.New()
		err := repo.Update(ctx, &domain.Meal{ID: meal.ID, Meal: "x", Description: "x", Author: &missing}, repository.MealScope{})
		assert.ErrorIs(t, err, domain.ErrAuthorNotFound)
	})
}

func TestMealRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMealRepository(testDB.DB)
	ctx := context.Background()

	meal := testutil.NewMealBuilder().WithSession("owner").Build(t, testDB.DB)

	require.NoError(t, repo.Delete(ctx, meal.ID, repository.MealScope{SessionID: "intruder"}))
	_, err := repo.GetByID(ctx, meal.ID, repository.MealScope{})
	require.NoError(t, err, "scoped delete from another session must not remove the meal")

	require.NoError(t, repo.Delete(ctx, meal.ID, repository.MealScope{}))
	_, err = repo.GetByID(ctx, meal.ID, repository.MealScope{})
	assert.ErrorIs(t, err, domain.ErrMealNotFound)

	assert.NoError(t, repo.Delete(ctx, uuid.New(), repository.MealScope{}))
}
