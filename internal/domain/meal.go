package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meal is a single eaten meal recorded by an anonymous session.
// Author is nullable: deleting the user sets it to NULL.
type Meal struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Meal          string         `json:"meal" gorm:"type:text;not null"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Date          datatypes.Date `json:"date" gorm:"not null"`
	Time          time.Time      `json:"time" gorm:"not null"`
	BelongsToDiet bool           `json:"belongs_to_diet" gorm:"not null;default:false"`
	Author        *uuid.UUID     `json:"author" gorm:"type:uuid;index"`
	SessionID     string         `json:"session_id" gorm:"type:text;not null;index"`
	CreatedAt     time.Time      `json:"created_at" gorm:"not null;default:now()"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"not null;default:now()"`
}

// MealWithAuthor is a meal row left-joined with its author.
// The user columns are nil when the meal has no author.
type MealWithAuthor struct {
	Meal
	UserID        *uuid.UUID `json:"user_id"`
	UserName      *string    `json:"user_name"`
	UserEmail     *string    `json:"user_email"`
	UserCreatedAt *time.Time `json:"user_created_at"`
}
