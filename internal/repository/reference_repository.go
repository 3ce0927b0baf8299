package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eureka/internal/model"
)

// ReferenceRepository reads task priorities and statuses
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// GetPriority retrieves a live priority by its ID
func (r *ReferenceRepository) GetPriority(ctx context.Context, id uuid.UUID) (*model.TaskPriority, error) {
	var priority model.TaskPriority
	result := r.db.WithContext(ctx).Scopes(Live).First(&priority, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPriorityNotFound
		}
		return nil, result.Error
	}
	return &priority, nil
}

// GetStatus retrieves a live status by its ID
func (r *ReferenceRepository) GetStatus(ctx context.Context, id uuid.UUID) (*model.TaskStatus, error) {
	var status model.TaskStatus
	result := r.db.WithContext(ctx).Scopes(Live).First(&status, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, result.Error
	}
	return &status, nil
}

func (r *ReferenceRepository) ListPriorities(ctx context.Context, req PageRequest) (Page[model.TaskPriority], error) {
	query := r.db.WithContext(ctx).Model(&model.TaskPriority{}).Scopes(Live).Session(&gorm.Session{})
	return paginate[model.TaskPriority](query, req, "name, id")
}

func (r *ReferenceRepository) ListStatuses(ctx context.Context, req PageRequest) (Page[model.TaskStatus], error) {
	query := r.db.WithContext(ctx).Model(&model.TaskStatus{}).Scopes(Live).Session(&gorm.Session{})
	return paginate[model.TaskStatus](query, req, "name, id")
}
