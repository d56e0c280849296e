package postgres

import (
	"fmt"

	"github.com/dom/daily-diet-api/internal/domain"
	"gorm.io/gorm"
)

const mealAuthorConstraint = "fk_meals_author"

// Migrate creates or alters the users and meals tables. It is safe to run
// repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.Meal{}); err != nil {
		return fmt.Errorf("auto-migrating tables: %w", err)
	}

	// meals.author is a plain column on the model, so the constraint is
	// declared by hand to get ON DELETE SET NULL.
	if !db.Migrator().HasConstraint(&domain.Meal{}, mealAuthorConstraint) {
		err := db.Exec(fmt.Sprintf(
			`ALTER TABLE meals ADD CONSTRAINT %s FOREIGN KEY (author) REFERENCES users(id) ON DELETE SET NULL`,
			mealAuthorConstraint,
		)).Error
		if err != nil {
			return fmt.Errorf("adding %s: %w", mealAuthorConstraint, err)
		}
	}

	return nil
}

// Rollback drops every table Migrate created, dependents first.
func Rollback(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&domain.Meal{}, &domain.User{}); err != nil {
		return fmt.Errorf("dropping tables: %w", err)
	}
	return nil
}
