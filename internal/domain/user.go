package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:now()"`
}
