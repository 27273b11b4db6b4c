package domain

import "time"

// Category partitions tasks into the three lifecycle buckets.
type Category string

const (
	CategoryDaily   Category = "daily"
	CategoryWeekly  Category = "weekly"
	CategorySpecial Category = "special"
)

// Categories lists all task categories.
func Categories() []Category {
	return []Category{CategoryDaily, CategoryWeekly, CategorySpecial}
}

// IsCategory reports whether c names a known category.
func IsCategory(c Category) bool {
	switch c {
	case CategoryDaily, CategoryWeekly, CategorySpecial:
		return true
	}
	return false
}

// Task is a user-created unit of work. Name is unique per category
// (case-insensitive). Points and Attribute never change after creation;
// a task transitions incomplete → completed exactly once.
type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Attribute   string     `json:"attribute"`
	Points      float64    `json:"points"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
