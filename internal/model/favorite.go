package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteTask marks a task as starred by a user
type FavoriteTask struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_tasks_user_task"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_tasks_user_task"`
	Deleted   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Task *Task `gorm:"foreignKey:TaskID"`
}
