package service

import (
	"context"
	"strings"

	"eureka/internal/model"
	"eureka/internal/repository"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	Attributes map[string]string `json:"attributes" validate:"required,min=1,dive,keys,required,max=64,endkeys,max=255"`
}

type ProfileService struct {
	store *repository.Store
}

func NewProfileService(store *repository.Store) *ProfileService {
	return &ProfileService{store: store}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.store.Users.GetWithProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fail(ErrUnauthorized, "unauthorized", nil)
	}
	return user, nil
}

// Update upserts the given profile attributes; attributes not mentioned are kept.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*model.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fail(ErrUnauthorized, "unauthorized", nil)
		}
		for key, value := range req.Attributes {
			if err := tx.Users.UpsertProfile(ctx, userID, strings.TrimSpace(key), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}
