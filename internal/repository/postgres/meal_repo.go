package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dom/daily-diet-api/internal/domain"
	"github.com/dom/daily-diet-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *mealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) scoped(ctx context.Context, scope repository.MealScope) *gorm.DB {
	q := r.db.WithContext(ctx)
	if scope.SessionID != "" {
		q = q.Where("session_id = ?", scope.SessionID)
	}
	return q
}

func (r *mealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	return translateMealError(r.db.WithContext(ctx).Create(meal).Error)
}

func (r *mealRepository) GetByID(ctx context.Context, id uuid.UUID, scope repository.MealScope) (*domain.Meal, error) {
	var meal domain.Meal
	err := r.scoped(ctx, scope).First(&meal, "id = ?", id).Error
	if err != nil {
		return nil, translateMealError(err)
	}
	return &meal, nil
}

// ListBySession returns the session's meals in insertion order. Meals
// created at the same instant are ordered by id.
func (r *mealRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Meal, error) {
	var meals []*domain.Meal
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) ListWithAuthorBySession(ctx context.Context, sessionID string) ([]*domain.MealWithAuthor, error) {
	rows := []*domain.MealWithAuthor{}
	err := r.db.WithContext(ctx).
		Table("meals").
		Select(`meals.*,
			users.id AS user_id,
			users.name AS user_name,
			users.email AS user_email,
			users.created_at AS user_created_at`).
		Joins("LEFT JOIN users ON meals.author = users.id").
		Where("meals.session_id = ?", sessionID).
		Order("meals.created_at ASC").
		Order("meals.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update overwrites the editable columns of the meal identified by meal.ID.
func (r *mealRepository) Update(ctx context.Context, meal *domain.Meal, scope repository.MealScope) error {
	meal.UpdatedAt = time.Now()
	err := r.scoped(ctx, scope).
		Model(&domain.Meal{}).
		Where("id = ?", meal.ID).
		Updates(map[string]any{
			"meal":            meal.Meal,
			"description":     meal.Description,
			"belongs_to_diet": meal.BelongsToDiet,
			"author":          meal.Author,
			"updated_at":      meal.UpdatedAt,
		}).Error
	return translateMealError(err)
}

func (r *mealRepository) Delete(ctx context.Context, id uuid.UUID, scope repository.MealScope) error {
	return r.scoped(ctx, scope).Delete(&domain.Meal{}, "id = ?", id).Error
}

func translateMealError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrMealNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrAuthorNotFound
	default:
		return err
	}
}
