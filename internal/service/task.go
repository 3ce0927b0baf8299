package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"eureka/internal/model"
	"eureka/internal/repository"

	"github.com/google/uuid"
)

// EditRequest changes a published task. Dates use the yyyy-MM-dd layout.
type EditRequest struct {
	TaskID          string        `json:"taskId" validate:"required"`
	TaskName        string        `json:"taskName" validate:"required"`
	TaskDescription string        `json:"taskDescription"`
	TaskStartDate   string        `json:"taskStartDate" validate:"required"`
	TaskEndDate     string        `json:"taskEndDate" validate:"required"`
	SubTasks        []SubTaskEdit `json:"subTasks" validate:"dive"`
}

// TaskService covers the task operations around publishing: edits, reads,
// deletion and stars.
type TaskService struct {
	store      *repository.Store
	reconciler *SubTaskReconciler
	now        func() time.Time
}

func NewTaskService(store *repository.Store, reconciler *SubTaskReconciler) *TaskService {
	return &TaskService{store: store, reconciler: reconciler, now: time.Now}
}

func (s *TaskService) Edit(ctx context.Context, userID uuid.UUID, req EditRequest) (*model.Task, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	start, err := parseDate(req.TaskStartDate)
	if err != nil {
		return nil, fail(ErrValidation, "task.edit.invalid.date", err)
	}
	end, err := parseDate(req.TaskEndDate)
	if err != nil {
		return nil, fail(ErrValidation, "task.edit.invalid.date", err)
	}
	taskID, ok := parseOptionalID(&req.TaskID)
	if !ok {
		return nil, fail(ErrNotFound, "task.not.found", nil)
	}

	var edited *model.Task
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err := s.owned(ctx, tx, userID, taskID)
		if err != nil {
			return err
		}
		task.SubTasks, task.Attachments = nil, nil
		task.Priority, task.Status = nil, nil

		task.Name = req.TaskName
		task.Description = req.TaskDescription
		task.TaskStart = &start
		task.TaskEnd = &end
		task.UpdatedAt = s.now().UTC()

		if _, err := s.reconciler.Reconcile(ctx, tx, task.ID, req.SubTasks); err != nil {
			return err
		}
		if err := tx.Tasks.Save(ctx, task); err != nil {
			return err
		}

		edited, err = tx.Tasks.GetByID(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// Detail returns one of the user's tasks with its subtasks and attachments.
func (s *TaskService) Detail(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	return s.owned(ctx, s.store, userID, taskID)
}

// Delete soft-deletes the task together with its subtasks, attachments and stars.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.owned(ctx, tx, userID, taskID); err != nil {
			return err
		}
		return tx.Tasks.SoftDelete(ctx, taskID)
	})
}

func (s *TaskService) List(ctx context.Context, userID uuid.UUID, page repository.PageRequest) (repository.Page[model.Task], error) {
	return s.store.Tasks.ListByUser(ctx, userID, page)
}

// ListByDate pages through tasks whose window overlaps the days from start
// through end, both yyyy-MM-dd and inclusive.
func (s *TaskService) ListByDate(ctx context.Context, userID uuid.UUID, start, end string, page repository.PageRequest) (repository.Page[model.Task], error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return repository.Page[model.Task]{}, fail(ErrValidation, "task.list.invalid.date", nil)
	}
	from, err := parseDate(strings.TrimSpace(start))
	if err != nil {
		return repository.Page[model.Task]{}, fail(ErrValidation, "task.list.invalid.date", err)
	}
	to, err := parseDate(strings.TrimSpace(end))
	if err != nil {
		return repository.Page[model.Task]{}, fail(ErrValidation, "task.list.invalid.date", err)
	}
	if to.Before(from) {
		return repository.Page[model.Task]{}, fail(ErrValidation, "task.list.invalid.date", nil)
	}

	endOfDay := to.Add(24*time.Hour - time.Nanosecond)
	return s.store.Tasks.FindByDateRange(ctx, userID, from, endOfDay, page)
}

func (s *TaskService) ListByStatus(ctx context.Context, userID uuid.UUID, statusID string, page repository.PageRequest) (repository.Page[model.Task], error) {
	if strings.TrimSpace(statusID) == "" {
		return repository.Page[model.Task]{}, fail(ErrValidation, "task.status.required", nil)
	}
	id, ok := parseOptionalID(&statusID)
	if !ok {
		return repository.Page[model.Task]{}, fail(ErrNotFound, "task.status.not.found", nil)
	}
	status, err := s.store.References.GetStatus(ctx, id)
	if errors.Is(err, repository.ErrStatusNotFound) {
		return repository.Page[model.Task]{}, fail(ErrNotFound, "task.status.not.found", err)
	}
	if err != nil {
		return repository.Page[model.Task]{}, err
	}
	return s.store.Tasks.FindByStatus(ctx, userID, status.ID, page)
}

func (s *TaskService) Search(ctx context.Context, userID uuid.UUID, query string, page repository.PageRequest) (repository.Page[model.Task], error) {
	return s.store.Tasks.SearchByNamePrefix(ctx, userID, strings.TrimSpace(query), page)
}

func (s *TaskService) Star(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.owned(ctx, s.store, userID, taskID); err != nil {
		return err
	}
	return s.store.Favorites.Star(ctx, userID, taskID)
}

func (s *TaskService) Unstar(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.store.Favorites.Unstar(ctx, userID, taskID)
}

func (s *TaskService) ListStarred(ctx context.Context, userID uuid.UUID, page repository.PageRequest) (repository.Page[model.FavoriteTask], error) {
	return s.store.Favorites.ListStarred(ctx, userID, page)
}

func (s *TaskService) Priorities(ctx context.Context, page repository.PageRequest) (repository.Page[model.TaskPriority], error) {
	return s.store.References.ListPriorities(ctx, page)
}

func (s *TaskService) Statuses(ctx context.Context, page repository.PageRequest) (repository.Page[model.TaskStatus], error) {
	return s.store.References.ListStatuses(ctx, page)
}

// owned loads a live task and checks that userID created it.
func (s *TaskService) owned(ctx context.Context, store *repository.Store, userID, taskID uuid.UUID) (*model.Task, error) {
	task, err := store.Tasks.GetByID(ctx, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, fail(ErrNotFound, "task.not.found", err)
	}
	if err != nil {
		return nil, err
	}
	if task.CreatedBy != userID {
		return nil, fail(ErrForbidden, "forbidden", nil)
	}
	return task, nil
}
