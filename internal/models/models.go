// Package models contains the persisted entities and the review aggregation
// rules that operate on them.
package models

// All returns every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&Recipe{},
		&SavedRecipe{},
		&AIRecipe{},
		&Complaint{},
	}
}
