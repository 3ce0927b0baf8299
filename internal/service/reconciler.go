package service

import (
	"context"
	"time"

	"eureka/internal/model"
	"eureka/internal/repository"

	"github.com/google/uuid"
)

// SubTaskEdit is an incoming change to one persisted subtask.
type SubTaskEdit struct {
	SubTaskID string `json:"subTaskId"`
	Name      string `json:"subTaskName" validate:"required"`
	Done      bool   `json:"done"`
}

// SubTaskReconciler merges edits into a task's persisted subtasks by id.
// Subtasks without an edit are left alone and edits without a subtask are
// dropped, so applying the same edits twice changes nothing the second time.
type SubTaskReconciler struct {
	now func() time.Time
}

func NewSubTaskReconciler() *SubTaskReconciler {
	return &SubTaskReconciler{now: time.Now}
}

func (r *SubTaskReconciler) Reconcile(ctx context.Context, store *repository.Store, taskID uuid.UUID, edits []SubTaskEdit) ([]model.SubTask, error) {
	// first edit per id wins
	byID := make(map[uuid.UUID]SubTaskEdit, len(edits))
	ids := make([]uuid.UUID, 0, len(edits))
	for _, edit := range edits {
		id, ok := parseOptionalID(&edit.SubTaskID)
		if !ok {
			continue
		}
		if _, seen := byID[id]; seen {
			continue
		}
		byID[id] = edit
		ids = append(ids, id)
	}

	existing, err := store.SubTasks.FindByIDs(ctx, taskID, ids)
	if err != nil {
		return nil, err
	}

	updated := make([]model.SubTask, 0, len(existing))
	for i := range existing {
		subTask := &existing[i]
		edit := byID[subTask.ID]
		if subTask.Name == edit.Name && subTask.Done == edit.Done {
			updated = append(updated, *subTask)
			continue
		}
		subTask.Name = edit.Name
		subTask.Done = edit.Done
		subTask.UpdatedAt = r.now().UTC()
		if err := store.SubTasks.Save(ctx, subTask); err != nil {
			return nil, err
		}
		updated = append(updated, *subTask)
	}
	return updated, nil
}
