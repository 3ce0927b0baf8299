package repository

import (
	"context"
	"errors"

	"eureka/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ctx context.Context, v *model.UserVerification) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error
}

// GetByID loads a verification together with its user
func (r *VerificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.UserVerification, error) {
	var v model.UserVerification
	err := r.db.WithContext(ctx).Preload("User").First(&v, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindByToken looks a verification up by its secret and type
func (r *VerificationRepository) FindByToken(ctx context.Context, token string, typ model.VerificationType) (*model.UserVerification, error) {
	var v model.UserVerification
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ? AND type = ?", token, typ).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Delete removes a consumed verification; verifications are not soft-deleted
func (r *VerificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.UserVerification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVerificationNotFound
	}
	return nil
}
