package models

import "time"

// Model is a persisted record with a string id and timestamps.
type Model interface {
	ID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Validate() error // Validate reports missing required fields before a write
}

// Repository is the CRUD surface each SQLite repository offers for its record type.
//
// List criteria keys are repository specific; unknown keys are ignored.
type Repository[T Model] interface {
	Create(record T) error
	Get(id string) (T, error)
	Update(record T) error
	Delete(id string) error // Delete is a soft delete where the table supports it
	List(criteria map[string]any) ([]T, error)
}
