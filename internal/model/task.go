package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxAttachmentsPerTask caps the live attachments a task may hold.
const MaxAttachmentsPerTask = 3

// Task is either a draft (IsPublish false) or a published task. At most one
// live draft exists per creator; the partial unique index enforces it.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_created_by;uniqueIndex:idx_tasks_temporary_draft,where:is_publish = false AND deleted = false"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid"`
	PriorityID  *uuid.UUID `gorm:"type:uuid"`
	StatusID    *uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	Description string
	IsPublish   bool `gorm:"not null"`
	TaskStart   *time.Time
	TaskEnd     *time.Time
	Deleted     bool `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Priority    *TaskPriority    `gorm:"foreignKey:PriorityID"`
	Status      *TaskStatus      `gorm:"foreignKey:StatusID"`
	SubTasks    []SubTask        `gorm:"foreignKey:TaskID"`
	Attachments []TaskAttachment `gorm:"foreignKey:TaskID"`
}

type SubTask struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TaskID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssignedTo *uuid.UUID `gorm:"type:uuid"`
	Name       string     `gorm:"not null"`
	Done       bool       `gorm:"not null"`
	Position   int        `gorm:"not null"`
	Deleted    bool       `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type AttachmentType int16

const (
	AttachmentImage AttachmentType = iota
	AttachmentDocument
)

func (t AttachmentType) String() string {
	if t == AttachmentDocument {
		return "DOCUMENT"
	}
	return "IMAGE"
}

type TaskAttachment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"not null"`
	Type      AttachmentType `gorm:"type:smallint;not null"`
	MimeType  string
	Deleted   bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
