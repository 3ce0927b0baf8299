package service

import (
	"context"
	"errors"
	"time"

	"eureka/internal/model"
	"eureka/internal/repository"

	"github.com/google/uuid"
)

// DraftResolver hands out the single unpublished task a user edits before publishing.
type DraftResolver struct {
	store *repository.Store
	now   func() time.Time
}

func NewDraftResolver(store *repository.Store) *DraftResolver {
	return &DraftResolver{store: store, now: time.Now}
}

// Resolve returns the user's draft, creating it when there is none. reused
// reports whether an existing draft was returned.
func (r *DraftResolver) Resolve(ctx context.Context, userID uuid.UUID) (task *model.Task, reused bool, err error) {
	user, err := r.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, fail(ErrUnauthorized, "task.create.temp.user.not.allowed", nil)
	}

	draft, err := r.store.Tasks.FindTemporaryDraft(ctx, userID)
	if err == nil {
		return draft, true, nil
	}
	if !errors.Is(err, repository.ErrTaskNotFound) {
		return nil, false, err
	}

	now := r.now().UTC()
	draft, created, err := r.store.Tasks.CreateDraft(ctx, &model.Task{
		ID:        uuid.New(),
		CreatedBy: userID,
		IsPublish: false,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, false, err
	}
	// a concurrent request may have won the insert; its draft is ours too
	return draft, !created, nil
}
