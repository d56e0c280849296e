package service

import (
	"context"
	"fmt"

	"github.com/dom/daily-diet-api/internal/domain"
	"github.com/dom/daily-diet-api/internal/logger"
	"github.com/dom/daily-diet-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserInput carries the writable user fields. Callers validate it first.
type UserInput struct {
	Name  string
	Email string
}

func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	user := &domain.User{
		ID:    uuid.New(),
		Name:  input.Name,
		Email: input.Email,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	logger.L().Info("user created", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser overwrites name and email. Updating an id that does not exist
// succeeds without writing anything.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input UserInput) error {
	user := &domain.User{
		ID:    id,
		Name:  input.Name,
		Email: input.Email,
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("updating user %s: %w", id, err)
	}
	return nil
}

// DeleteUser removes the user after checking it exists. Meals it authored
// keep existing with a NULL author.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}

	logger.L().Info("user deleted", zap.String("user_id", id.String()))
	return nil
}
