package repository

import (
	"context"

	"github.com/dom/daily-diet-api/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MealScope narrows single-meal lookups to one session. An empty SessionID
// matches meals of any session.
type MealScope struct {
	SessionID string
}

type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) error
	GetByID(ctx context.Context, id uuid.UUID, scope MealScope) (*domain.Meal, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Meal, error)
	ListWithAuthorBySession(ctx context.Context, sessionID string) ([]*domain.MealWithAuthor, error)
	Update(ctx context.Context, meal *domain.Meal, scope MealScope) error
	Delete(ctx context.Context, id uuid.UUID, scope MealScope) error
}

type Repositories struct {
	User UserRepository
	Meal MealRepository
}
