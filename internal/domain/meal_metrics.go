package domain

// MealMetrics summarises the meals of one session.
type MealMetrics struct {
	TotalMeals          int `json:"totalMeals"`
	InsideDietMeals     int `json:"insideDietMeals"`
	NotInsideDietMeals  int `json:"notInsideDietMeals"`
	BestSequenceOfMeals int `json:"bestSequenceOfMeals"`
}

// ComputeMealMetrics counts the meals and finds the longest run of
// consecutive diet meals. meals must be in listing order.
func ComputeMealMetrics(meals []*Meal) MealMetrics {
	var m MealMetrics
	m.TotalMeals = len(meals)

	for _, meal := range meals {
		if meal.BelongsToDiet {
			m.InsideDietMeals++
		} else {
			m.NotInsideDietMeals++
		}
	}

	m.BestSequenceOfMeals = BestDietStreak(meals)
	return m
}

// BestDietStreak walks the meals keeping a running count of diet meals.
// A non-diet meal closes the current run and resets the counter; the last
// run is closed after the scan. The result is the longest closed run, so
// an empty list yields 0.
func BestDietStreak(meals []*Meal) int {
	runs := make([]int, 0, len(meals)+1)
	current := 0

	for _, meal := range meals {
		if meal.BelongsToDiet {
			current++
			continue
		}
		runs = append(runs, current)
		current = 0
	}
	runs = append(runs, current)

	best := runs[0]
	for _, r := range runs[1:] {
		if r > best {
			best = r
		}
	}
	return best
}
