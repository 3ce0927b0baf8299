package service

import (
	"context"
	"errors"
	"time"

	"eureka/internal/model"
	"eureka/internal/repository"

	"github.com/google/uuid"
)

type SubTaskInput struct {
	Name string `json:"subTaskName" validate:"required"`
	Done bool   `json:"done"`
}

// PublishRequest is the full snapshot of a task at publish time. Start and
// End are RFC 3339 timestamps; nil or blank leaves the stored value as is.
type PublishRequest struct {
	TaskID          *string        `json:"taskId"`
	TaskName        string         `json:"taskName" validate:"required"`
	TaskDescription string         `json:"taskDescription"`
	Start           *string        `json:"start"`
	End             *string        `json:"end"`
	PriorityID      *string        `json:"priorityId"`
	SubTasks        []SubTaskInput `json:"subtask" validate:"dive"`
}

// Publisher applies a publish snapshot to a task, creating the task when the
// request does not name an existing one.
type Publisher struct {
	store *repository.Store
	now   func() time.Time
}

func NewPublisher(store *repository.Store) *Publisher {
	return &Publisher{store: store, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, userID uuid.UUID, req PublishRequest) (*model.Task, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	// dates are parsed up front so a bad request never touches the store
	start, err := parseOptionalTimestamp(req.Start)
	if err != nil {
		return nil, fail(ErrValidation, "task.publish.invalid.date", err)
	}
	end, err := parseOptionalTimestamp(req.End)
	if err != nil {
		return nil, fail(ErrValidation, "task.publish.invalid.date", err)
	}

	user, err := p.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fail(ErrUnauthorized, "unauthorized", nil)
	}

	var published *model.Task
	err = p.store.Transaction(ctx, func(tx *repository.Store) error {
		task, exists, err := p.target(ctx, tx, userID, req.TaskID)
		if err != nil {
			return err
		}

		if start != nil {
			task.TaskStart = start
		}
		if end != nil {
			task.TaskEnd = end
		}
		if priorityID, ok := parseOptionalID(req.PriorityID); ok {
			priority, err := tx.References.GetPriority(ctx, priorityID)
			switch {
			case err == nil:
				task.PriorityID = &priority.ID
			case !errors.Is(err, repository.ErrPriorityNotFound):
				return err
			}
		}

		now := p.now().UTC()
		task.Name = req.TaskName
		task.Description = req.TaskDescription
		task.IsPublish = true
		task.CreatedBy = userID
		task.CreatedAt = now
		task.UpdatedAt = now

		if exists {
			if err := tx.Tasks.Save(ctx, task); err != nil {
				return err
			}
		} else if err := tx.Tasks.Create(ctx, task); err != nil {
			return fail(ErrNoContent, "task.publish.failed", err)
		}

		// the snapshot replaces whatever subtasks the task had
		if err := tx.SubTasks.SoftDeleteByTask(ctx, task.ID); err != nil {
			return err
		}
		subTasks := make([]model.SubTask, len(req.SubTasks))
		for i, in := range req.SubTasks {
			subTasks[i] = model.SubTask{
				ID:        uuid.New(),
				TaskID:    task.ID,
				Name:      in.Name,
				Done:      in.Done,
				Position:  i,
				CreatedAt: now,
				UpdatedAt: now,
			}
		}
		if err := tx.SubTasks.CreateBatch(ctx, subTasks); err != nil {
			return err
		}

		published, err = tx.Tasks.GetByID(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return published, nil
}

// target loads the task named by the request or starts a new one.
func (p *Publisher) target(ctx context.Context, tx *repository.Store, userID uuid.UUID, rawID *string) (*model.Task, bool, error) {
	if id, ok := parseOptionalID(rawID); ok {
		task, err := tx.Tasks.GetByID(ctx, id)
		switch {
		case err == nil:
			if task.CreatedBy != userID {
				return nil, false, fail(ErrForbidden, "forbidden", nil)
			}
			// children are rewritten below; keep them out of the save
			task.SubTasks, task.Attachments = nil, nil
			task.Priority, task.Status = nil, nil
			return task, true, nil
		case !errors.Is(err, repository.ErrTaskNotFound):
			return nil, false, err
		}
	}
	return &model.Task{ID: uuid.New(), CreatedBy: userID}, false, nil
}
