package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eureka/internal/model"
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(ctx context.Context, attachment *model.TaskAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// GetByID retrieves a live attachment
func (r *AttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TaskAttachment, error) {
	var attachment model.TaskAttachment
	if err := r.db.WithContext(ctx).Scopes(Live).First(&attachment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

// CountLive counts the attachments a task currently holds
func (r *AttachmentRepository) CountLive(ctx context.Context, taskID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TaskAttachment{}).
		Scopes(Live).
		Where("task_id = ?", taskID).
		Count(&count).Error
	return count, err
}

// SoftDelete hides a live attachment
func (r *AttachmentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.TaskAttachment{}).
		Scopes(Live).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted": true, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}
