package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eureka/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// withRelations preloads the live children of a task in display order
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Priority").
		Preload("Status").
		Preload("SubTasks", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(Live).Order("position, created_at")
		}).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(Live).Order("created_at")
		})
}

// Create inserts a task row; children are written through their own repositories
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// CreateDraft inserts a draft unless the creator already holds one, in which
// case the partial unique index turns the insert into a no-op and the
// existing draft is returned with created == false.
func (r *TaskRepository) CreateDraft(ctx context.Context, task *model.Task) (*model.Task, bool, error) {
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(task)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return task, true, nil
	}

	existing, err := r.FindTemporaryDraft(ctx, task.CreatedBy)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// GetByID retrieves a live task with its live subtasks and attachments
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).Scopes(Live, withRelations).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// FindTemporaryDraft returns the creator's live unpublished task
func (r *TaskRepository) FindTemporaryDraft(ctx context.Context, userID uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Scopes(Live, withRelations).
		Where("created_by = ? AND is_publish = ?", userID, false).
		First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// Save updates the task's own columns
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) published(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Scopes(Live).
		Where("created_by = ? AND is_publish = ?", userID, true)
}

// ListByUser pages through the user's published tasks, newest first
func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID, req PageRequest) (Page[model.Task], error) {
	query := r.published(ctx, userID).Session(&gorm.Session{})
	return paginate[model.Task](query, req, "created_at DESC, id", withRelations)
}

// FindByStatus pages through the user's published tasks in a status
func (r *TaskRepository) FindByStatus(ctx context.Context, userID, statusID uuid.UUID, req PageRequest) (Page[model.Task], error) {
	query := r.published(ctx, userID).
		Where("status_id = ?", statusID).
		Session(&gorm.Session{})
	return paginate[model.Task](query, req, "created_at DESC, id", withRelations)
}

// FindByDateRange pages through the user's published tasks whose window
// overlaps [start, end]
func (r *TaskRepository) FindByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time, req PageRequest) (Page[model.Task], error) {
	query := r.published(ctx, userID).
		Where("task_start <= ? AND task_end >= ?", end, start).
		Session(&gorm.Session{})
	return paginate[model.Task](query, req, "task_start, id", withRelations)
}

// SearchByNamePrefix matches the start of the task name, ignoring case
func (r *TaskRepository) SearchByNamePrefix(ctx context.Context, userID uuid.UUID, prefix string, req PageRequest) (Page[model.Task], error) {
	query := r.published(ctx, userID).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, prefixPattern(prefix)).
		Session(&gorm.Session{})
	return paginate[model.Task](query, req, "name, id", withRelations)
}

// SoftDelete hides a task and everything it owns in one transaction
// (a savepoint when the repository is already bound to one).
func (r *TaskRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&model.Task{}).
			Scopes(Live).
			Where("id = ?", id).
			Updates(map[string]interface{}{"deleted": true, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}

		for _, child := range []interface{}{&model.SubTask{}, &model.TaskAttachment{}} {
			if err := tx.Model(child).
				Scopes(Live).
				Where("task_id = ?", id).
				Updates(map[string]interface{}{"deleted": true, "updated_at": now}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.FavoriteTask{}).
			Scopes(Live).
			Where("task_id = ?", id).
			Update("deleted", true).Error
	})
}
