package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority and TaskStatus are reference rows; the task workflow only reads them.
type TaskPriority struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	Color       string
	Deleted     bool `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TaskStatus struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	Color       string
	Deleted     bool `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
