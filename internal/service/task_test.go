package service_test

import (
	"context"
	"testing"

	"eureka/internal/model"
	"eureka/internal/repository"
	"eureka/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(store *repository.Store) *service.TaskService {
	return service.NewTaskService(store, service.NewSubTaskReconciler())
}

func TestTaskService_Edit(t *testing.T) {
	store, _ := newStore(t)
	user := createUser(t, store, "jane@example.com", model.UserStatusActive)
	task := publishWithSubTasks(t, store, user.ID, "Draft outline", "Collect data")

	edited, err := newTaskService(store).Edit(context.Background(), user.ID, service.EditRequest{
		TaskID:          task.ID.String(),
		TaskName:        "Write final report",
		TaskDescription: "Quarterly numbers",
		TaskStartDate:   "2024-02-01",
		TaskEndDate:     "2024-02-10",
		SubTasks: []service.SubTaskEdit{
			{SubTaskID: task.SubTasks[1].ID.String(), Name: "Collect data", Done: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Write final report", edited.Name)
	assert.Equal(t, "Quarterly numbers", edited.Description)
	assert.Equal(t, "2024-02-01", edited.TaskStart.UTC().Format("2006-01-02"))
	assert.Equal(t, "2024-02-10", edited.TaskEnd.UTC().Format("2006-01-02"))
	require.Len(t, edited.SubTasks, 2)
	assert.False(t, edited.SubTasks[0].Done)
	assert.True(t, edited.SubTasks[1].Done)
}

func TestTaskService_Edit_Errors(t *testing.T) {
	store, _ := newStore(t)
	owner := createUser(t, store, "owner@example.com", model.UserStatusActive)
	other := createUser(t, store, "other@example.com", model.UserStatusActive)
	task := publishWithSubTasks(t, store, owner.ID, "Draft outline")
	svc := newTaskService(store)
	ctx := context.Background()

	valid := service.EditRequest{
		TaskID:        task.ID.String(),
		TaskName:      "Renamed",
		TaskStartDate: "2024-02-01",
		TaskEndDate:   "2024-02-10",
	}

	badDate := valid
	badDate.TaskStartDate = "01-02-2024"
	_, err := svc.Edit(ctx, owner.ID, badDate)
	assert.ErrorIs(t, err, service.ErrValidation)

	missingDate := valid
	missingDate.TaskEndDate = ""
	_, err = svc.Edit(ctx, owner.ID, missingDate)
	assert.ErrorIs(t, err, service.ErrValidation)

	unknown := valid
	unknown.TaskID = uuid.NewString()
	_, err = svc.Edit(ctx, owner.ID, unknown)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Edit(ctx, other.ID, valid)
	assert.ErrorIs(t, err, service.ErrForbidden)

	reloaded, err := store.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", reloaded.Name)
}

func TestTaskService_Detail(t *testing.T) {
	store, _ := newStore(t)
	owner := createUser(t, store, "owner@example.com", model.UserStatusActive)
	other := createUser(t, store, "other@example.com", model.UserStatusActive)
	task := publishWithSubTasks(t, store, owner.ID, "Draft outline")
	svc := newTaskService(store)

	found, err := svc.Detail(context.Background(), owner.ID, task.ID)
	require.NoError(t, err)
	assert.Len(t, found.SubTasks, 1)

	_, err = svc.Detail(context.Background(), other.ID, task.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.Detail(context.Background(), owner.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTaskService_Delete_Cascades(t *testing.T) {
	store, db := newStore(t)
	owner := createUser(t, store, "owner@example.com", model.UserStatusActive)
	task := publishWithSubTasks(t, store, owner.ID, "Draft outline")
	svc := newTaskService(store)
	ctx := context.Background()
	require.NoError(t, svc.Star(ctx, owner.ID, task.ID))

	require.NoError(t, svc.Delete(ctx, owner.ID, task.ID))

	_, err := svc.Detail(ctx, owner.ID, task.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, int64(0), countRows(t, db, &model.SubTask{}, "deleted = ?", false))
	assert.Equal(t, int64(0), countRows(t, db, &model.FavoriteTask{}, "deleted = ?", false))
	// rows stay physically present
	assert.Equal(t, int64(1), countRows(t, db, &model.Task{}))

	assert.ErrorIs(t, svc.Delete(ctx, owner.ID, task.ID), service.ErrNotFound)
}

func TestTaskService_ListByDate(t *testing.T) {
	store, _ := newStore(t)
	user := createUser(t, store, "jane@example.com", model.UserStatusActive)
	ctx := context.Background()
	publisher := service.NewPublisher(store)

	_, err := publisher.Publish(ctx, user.ID, service.PublishRequest{
		TaskName: "Late on the last day",
		Start:    strPtr("2024-03-31T18:00:00Z"),
		End:      strPtr("2024-04-02T09:00:00Z"),
	})
	require.NoError(t, err)
	_, err = publisher.Publish(ctx, user.ID, service.PublishRequest{
		TaskName: "April",
		Start:    strPtr("2024-04-10T00:00:00Z"),
		End:      strPtr("2024-04-11T00:00:00Z"),
	})
	require.NoError(t, err)

	svc := newTaskService(store)
	page, err := svc.ListByDate(ctx, user.ID, "2024-03-01", "2024-03-31", repository.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Late on the last day", page.Items[0].Name)

	for _, tc := range []struct{ start, end string }{
		{"", "2024-03-31"},
		{"2024-03-01", ""},
		{"2024/03/01", "2024-03-31"},
		{"2024-03-31", "2024-03-01"},
	} {
		_, err := svc.ListByDate(ctx, user.ID, tc.start, tc.end, repository.PageRequest{})
		assert.ErrorIs(t, err, service.ErrValidation, "start=%q end=%q", tc.start, tc.end)
	}
}

func TestTaskService_ListByStatus(t *testing.T) {
	store, db := newStore(t)
	user := createUser(t, store, "jane@example.com", model.UserStatusActive)
	done := createStatus(t, db, "Done")
	task := publishWithSubTasks(t, store, user.ID)
	require.NoError(t, db.Model(&model.Task{}).Where("id = ?", task.ID).Update("status_id", done.ID).Error)
	svc := newTaskService(store)
	ctx := context.Background()

	page, err := svc.ListByStatus(ctx, user.ID, done.ID.String(), repository.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].Status)
	assert.Equal(t, "Done", page.Items[0].Status.Name)

	_, err = svc.ListByStatus(ctx, user.ID, " ", repository.PageRequest{})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.ListByStatus(ctx, user.ID, uuid.NewString(), repository.PageRequest{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTaskService_SearchAndStars(t *testing.T) {
	store, _ := newStore(t)
	user := createUser(t, store, "jane@example.com", model.UserStatusActive)
	other := createUser(t, store, "other@example.com", model.UserStatusActive)
	task := publishWithSubTasks(t, store, user.ID)
	svc := newTaskService(store)
	ctx := context.Background()

	found, err := svc.Search(ctx, user.ID, " write ", repository.PageRequest{})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, task.ID, found.Items[0].ID)

	assert.ErrorIs(t, svc.Star(ctx, other.ID, task.ID), service.ErrForbidden)
	require.NoError(t, svc.Star(ctx, user.ID, task.ID))

	starred, err := svc.ListStarred(ctx, user.ID, repository.PageRequest{})
	require.NoError(t, err)
	require.Len(t, starred.Items, 1)
	assert.Equal(t, task.ID, starred.Items[0].TaskID)

	require.NoError(t, svc.Unstar(ctx, user.ID, task.ID))
	starred, err = svc.ListStarred(ctx, user.ID, repository.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, starred.Items)
}

func TestTaskService_ReferenceLists(t *testing.T) {
	store, db := newStore(t)
	createPriority(t, db, "High")
	createPriority(t, db, "Low")
	createStatus(t, db, "To Do")
	svc := newTaskService(store)

	priorities, err := svc.Priorities(context.Background(), repository.PageRequest{Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), priorities.TotalItems)
	require.Len(t, priorities.Items, 1)
	assert.Equal(t, "High", priorities.Items[0].Name)

	statuses, err := svc.Statuses(context.Background(), repository.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, statuses.Items, 1)
}
