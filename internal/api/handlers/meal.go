package handlers

import (
	"net/http"
	"time"

	"github.com/dom/daily-diet-api/internal/api/middleware"
	"github.com/dom/daily-diet-api/internal/api/validators"
	"github.com/dom/daily-diet-api/internal/domain"
	"github.com/dom/daily-diet-api/internal/repository"
	"github.com/dom/daily-diet-api/internal/service"
	"github.com/google/uuid"
)

type MealHandler struct {
	mealService      *service.MealService
	sessionTTL       time.Duration
	enforceOwnership bool
}

func NewMealHandler(mealService *service.MealService, sessionTTL time.Duration, enforceOwnership bool) *MealHandler {
	return &MealHandler{
		mealService:      mealService,
		sessionTTL:       sessionTTL,
		enforceOwnership: enforceOwnership,
	}
}

// MealRequest is the body for creating and updating meals. Other fields,
// such as date and time, are ignored.
type MealRequest struct {
	Meal          string `json:"meal" validate:"required"`
	Description   string `json:"description" validate:"required"`
	BelongsToDiet bool   `json:"belongsToDiet"`
	Author        string `json:"author" validate:"required"`
}

// decodeMeal reads and validates a meal body. The author is parsed the same
// way as path ids, so any casing uuid.Parse accepts is valid.
func decodeMeal(w http.ResponseWriter, r *http.Request) (service.MealInput, bool) {
	var req MealRequest
	if !decodeAndValidate(w, r, &req) {
		return service.MealInput{}, false
	}

	author, err := uuid.Parse(req.Author)
	if err != nil {
		writeValidationError(w, []validators.Issue{{Field: "author", Message: "must be a valid uuid"}})
		return service.MealInput{}, false
	}

	return service.MealInput{
		Meal:          req.Meal,
		Description:   req.Description,
		BelongsToDiet: req.BelongsToDiet,
		Author:        author,
	}, true
}

type NewMealResponse struct {
	NewMeal *domain.Meal `json:"newMeal"`
}

type MealResponse struct {
	Meal *domain.Meal `json:"meal"`
}

// scope limits lookups by id to the caller's session when ownership is
// enforced. Routes that use it sit behind RequireSession in that mode.
func (h *MealHandler) scope(r *http.Request) repository.MealScope {
	if !h.enforceOwnership {
		return repository.MealScope{}
	}
	sessionID, _ := middleware.GetSessionID(r.Context())
	return repository.MealScope{SessionID: sessionID}
}

func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeMeal(w, r)
	if !ok {
		return
	}

	sessionID, ok := middleware.SessionFromRequest(r)
	if !ok {
		sessionID = middleware.IssueSessionCookie(w, h.sessionTTL)
	}

	meal, err := h.mealService.CreateMeal(r.Context(), sessionID, input)
	if err != nil {
		writeServiceError(w, r, err, "Meal Not Found")
		return
	}

	writeJSON(w, http.StatusCreated, NewMealResponse{NewMeal: meal})
}

func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())

	meals, err := h.mealService.ListMeals(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err, "Meal Not Found")
		return
	}

	if meals == nil {
		meals = []*domain.MealWithAuthor{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (h *MealHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())

	metrics, err := h.mealService.GetMetrics(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err, "Meal Not Found")
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	meal, err := h.mealService.GetMeal(r.Context(), id, h.scope(r))
	if err != nil {
		writeServiceError(w, r, err, "Meal Not Found")
		return
	}

	writeJSON(w, http.StatusOK, MealResponse{Meal: meal})
}

func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	input, ok := decodeMeal(w, r)
	if !ok {
		return
	}

	if err := h.mealService.UpdateMeal(r.Context(), id, input, h.scope(r)); err != nil {
		writeServiceError(w, r, err, "Meal not Found")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.mealService.DeleteMeal(r.Context(), id, h.scope(r)); err != nil {
		writeServiceError(w, r, err, "Meal Not Found")
		return
	}

	writeMessage(w, http.StatusCreated, "meal deleted")
}
