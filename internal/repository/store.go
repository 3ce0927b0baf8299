package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories over one connection or one transaction.
type Store struct {
	db *gorm.DB

	Users         *UserRepository
	Verifications *VerificationRepository
	Tasks         *TaskRepository
	SubTasks      *SubTaskRepository
	Attachments   *AttachmentRepository
	References    *ReferenceRepository
	Favorites     *FavoriteRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Verifications: NewVerificationRepository(db),
		Tasks:         NewTaskRepository(db),
		SubTasks:      NewSubTaskRepository(db),
		Attachments:   NewAttachmentRepository(db),
		References:    NewReferenceRepository(db),
		Favorites:     NewFavoriteRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
