package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/daily-diet-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name  string
	email string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:  fmt.Sprintf("testuser_%s", suffix),
		email: fmt.Sprintf("testuser_%s@example.com", suffix),
	}
}

// WithName sets the name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:        uuid.New(),
		Name:      b.name,
		Email:     b.email,
		CreatedAt: time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// MealBuilder creates test meals with a builder pattern
type MealBuilder struct {
	meal          string
	description   string
	belongsToDiet bool
	author        *uuid.UUID
	sessionID     string
	createdAt     time.Time
}

// NewMealBuilder creates a new MealBuilder with default values
func NewMealBuilder() *MealBuilder {
	return &MealBuilder{
		meal:        "Lunch",
		description: "Rice, beans and salad",
		sessionID:   uuid.NewString(),
	}
}

// WithName sets the meal name
func (b *MealBuilder) WithName(meal string) *MealBuilder {
	b.meal = meal
	return b
}

// InDiet sets the diet flag
func (b *MealBuilder) InDiet(inDiet bool) *MealBuilder {
	b.belongsToDiet = inDiet
	return b
}

// WithAuthor links the meal to a user
func (b *MealBuilder) WithAuthor(user *domain.User) *MealBuilder {
	b.author = &user.ID
	return b
}

// WithSession sets the owning session id
func (b *MealBuilder) WithSession(sessionID string) *MealBuilder {
	b.sessionID = sessionID
	return b
}

// At sets the creation timestamp
func (b *MealBuilder) At(createdAt time.Time) *MealBuilder {
	b.createdAt = createdAt
	return b
}

// Build creates the meal in the database
func (b *MealBuilder) Build(t *testing.T, db *gorm.DB) *domain.Meal {
	t.Helper()

	now := time.Now()
	if !b.createdAt.IsZero() {
		now = b.createdAt
	}
	meal := &domain.Meal{
		ID:            uuid.New(),
		Meal:          b.meal,
		Description:   b.description,
		Date:          datatypes.Date(now),
		Time:          now,
		BelongsToDiet: b.belongsToDiet,
		Author:        b.author,
		SessionID:     b.sessionID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := db.Create(meal).Error; err != nil {
		t.Fatalf("failed to create meal: %v", err)
	}

	return meal
}

// SeedMealPattern creates one meal per character of pattern in order,
// 'T' for a diet meal and anything else for an off-diet meal.
func SeedMealPattern(t *testing.T, db *gorm.DB, sessionID, pattern string) []*domain.Meal {
	t.Helper()

	meals := make([]*domain.Meal, 0, len(pattern))
	for i, c := range pattern {
		meal := NewMealBuilder().
			WithName(fmt.Sprintf("meal_%d", i)).
			InDiet(c == 'T').
			WithSession(sessionID).
			Build(t, db)
		meals = append(meals, meal)
		// created_at orders the listing; keep timestamps strictly increasing
		time.Sleep(2 * time.Millisecond)
	}
	return meals
}

// NewJSONRequest creates an HTTP request with a JSON body and an optional session cookie
func NewJSONRequest(t *testing.T, method, url string, body interface{}, sessionID string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionId", Value: sessionID})
	}

	return req
}
