package service

import (
	"github.com/dom/daily-diet-api/internal/repository"
)

type Services struct {
	User *UserService
	Meal *MealService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		User: NewUserService(repos.User),
		Meal: NewMealService(repos.Meal),
	}
}
