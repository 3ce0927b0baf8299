package repository

import (
	"context"
	"errors"

	"eureka/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Star marks a task as a favourite of the user, reviving an earlier star if one exists
func (r *FavoriteRepository) Star(ctx context.Context, userID, taskID uuid.UUID) error {
	// find-then-write inside one transaction so a revived row is not duplicated
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.FavoriteTask
		err := tx.Where("user_id = ? AND task_id = ?", userID, taskID).First(&existing).Error

		if err == nil {
			if !existing.Deleted {
				return nil
			}
			return tx.Model(&existing).Update("deleted", false).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&model.FavoriteTask{
			ID:     uuid.New(),
			UserID: userID,
			TaskID: taskID,
		}).Error
	})
}

// Unstar removes the user's star from a task; unstarring twice is a no-op
func (r *FavoriteRepository) Unstar(ctx context.Context, userID, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.FavoriteTask{}).
		Scopes(Live).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Update("deleted", true).Error
}

// ListStarred pages through the user's starred live tasks, most recent star first
func (r *FavoriteRepository) ListStarred(ctx context.Context, userID uuid.UUID, req PageRequest) (Page[model.FavoriteTask], error) {
	query := r.db.WithContext(ctx).
		Model(&model.FavoriteTask{}).
		Scopes(Live).
		Joins("JOIN tasks ON tasks.id = favorite_tasks.task_id AND tasks.deleted = ?", false).
		Where("favorite_tasks.user_id = ?", userID).
		Session(&gorm.Session{})
	return paginate[model.FavoriteTask](query, req, "favorite_tasks.created_at DESC, favorite_tasks.id",
		func(db *gorm.DB) *gorm.DB {
			return db.Preload("Task", withRelations)
		})
}
