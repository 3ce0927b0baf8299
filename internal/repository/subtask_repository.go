package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eureka/internal/model"
)

const subTaskBatchSize = 100

type SubTaskRepository struct {
	db *gorm.DB
}

func NewSubTaskRepository(db *gorm.DB) *SubTaskRepository {
	return &SubTaskRepository{db: db}
}

// CreateBatch bulk-inserts subtasks
func (r *SubTaskRepository) CreateBatch(ctx context.Context, subTasks []model.SubTask) error {
	if len(subTasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(subTasks, subTaskBatchSize).Error
}

// FindByIDs returns the live subtasks of taskID among ids; unknown ids are skipped
func (r *SubTaskRepository) FindByIDs(ctx context.Context, taskID uuid.UUID, ids []uuid.UUID) ([]model.SubTask, error) {
	var subTasks []model.SubTask
	if len(ids) == 0 {
		return subTasks, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(Live).
		Where("task_id = ? AND id IN ?", taskID, ids).
		Order("position, created_at").
		Find(&subTasks).Error
	return subTasks, err
}

func (r *SubTaskRepository) Save(ctx context.Context, subTask *model.SubTask) error {
	return r.db.WithContext(ctx).Save(subTask).Error
}

// SoftDeleteByTask hides every live subtask of a task
func (r *SubTaskRepository) SoftDeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.SubTask{}).
		Scopes(Live).
		Where("task_id = ?", taskID).
		Updates(map[string]interface{}{"deleted": true, "updated_at": time.Now()}).Error
}
