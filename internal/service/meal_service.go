package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dom/daily-diet-api/internal/domain"
	"github.com/dom/daily-diet-api/internal/logger"
	"github.com/dom/daily-diet-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type MealService struct {
	mealRepo repository.MealRepository
	now      func() time.Time
}

func NewMealService(mealRepo repository.MealRepository) *MealService {
	return &MealService{
		mealRepo: mealRepo,
		now:      time.Now,
	}
}

// MealInput carries the writable meal fields. Callers validate it first.
type MealInput struct {
	Meal          string
	Description   string
	BelongsToDiet bool
	Author        uuid.UUID
}

// CreateMeal records a meal for the session. Date and time are always the
// server's current time. The returned meal is the row as stored.
func (s *MealService) CreateMeal(ctx context.Context, sessionID string, input MealInput) (*domain.Meal, error) {
	// Postgres keeps microseconds
	now := s.now().Truncate(time.Microsecond)
	year, month, day := now.Date()
	author := input.Author

	meal := &domain.Meal{
		ID:            uuid.New(),
		Meal:          input.Meal,
		Description:   input.Description,
		Date:          datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, now.Location())),
		Time:          now,
		BelongsToDiet: input.BelongsToDiet,
		Author:        &author,
		SessionID:     sessionID,
	}

	if err := s.mealRepo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("creating meal: %w", err)
	}

	logger.L().Info("meal created",
		zap.String("meal_id", meal.ID.String()),
		zap.String("session_id", sessionID),
	)

	stored, err := s.mealRepo.GetByID(ctx, meal.ID, repository.MealScope{})
	if err != nil {
		return nil, fmt.Errorf("reading created meal %s: %w", meal.ID, err)
	}
	return stored, nil
}

func (s *MealService) GetMeal(ctx context.Context, id uuid.UUID, scope repository.MealScope) (*domain.Meal, error) {
	return s.mealRepo.GetByID(ctx, id, scope)
}

// ListMeals returns the session's meals joined with their authors.
func (s *MealService) ListMeals(ctx context.Context, sessionID string) ([]*domain.MealWithAuthor, error) {
	return s.mealRepo.ListWithAuthorBySession(ctx, sessionID)
}

// GetMetrics computes the session's meal totals and best diet streak from a
// single ordered read, so the counts always agree with each other.
func (s *MealService) GetMetrics(ctx context.Context, sessionID string) (domain.MealMetrics, error) {
	meals, err := s.mealRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return domain.MealMetrics{}, fmt.Errorf("listing meals for metrics: %w", err)
	}
	return domain.ComputeMealMetrics(meals), nil
}

// UpdateMeal checks the meal exists within scope and overwrites its
// editable fields.
func (s *MealService) UpdateMeal(ctx context.Context, id uuid.UUID, input MealInput, scope repository.MealScope) error {
	if _, err := s.mealRepo.GetByID(ctx, id, scope); err != nil {
		return err
	}

	author := input.Author
	meal := &domain.Meal{
		ID:            id,
		Meal:          input.Meal,
		Description:   input.Description,
		BelongsToDiet: input.BelongsToDiet,
		Author:        &author,
	}

	if err := s.mealRepo.Update(ctx, meal, scope); err != nil {
		return fmt.Errorf("updating meal %s: %w", id, err)
	}
	return nil
}

// DeleteMeal deletes by id. Deleting a meal that does not exist succeeds.
func (s *MealService) DeleteMeal(ctx context.Context, id uuid.UUID, scope repository.MealScope) error {
	if err := s.mealRepo.Delete(ctx, id, scope); err != nil {
		return fmt.Errorf("deleting meal %s: %w", id, err)
	}

	logger.L().Info("meal deleted", zap.String("meal_id", id.String()))
	return nil
}
