package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dom/daily-diet-api/internal/api/validators"
	"github.com/dom/daily-diet-api/internal/domain"
	"github.com/dom/daily-diet-api/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type UserResponse struct {
	User *domain.User `json:"user"`
}

type UserListResponse struct {
	Users []*domain.User `json:"users"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []validators.Issue{{Message: "Invalid request body"}})
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		writeMessage(w, http.StatusUnauthorized, "Name or email missing")
		return
	}

	if err := validators.New().Struct(&req); err != nil {
		writeValidationError(w, validators.Issues(err))
		return
	}

	user, err := h.userService.CreateUser(r.Context(), service.UserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err, "User not Found")
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{User: user})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "User not Found")
		return
	}

	if users == nil {
		users = []*domain.User{}
	}
	writeJSON(w, http.StatusOK, UserListResponse{Users: users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "User not Found")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.userService.UpdateUser(r.Context(), id, service.UserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err, "User not Found")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "User not Found")
		return
	}

	writeMessage(w, http.StatusCreated, "user deleted")
}
