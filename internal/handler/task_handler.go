package handler

import (
	"context"
	"net/http"

	"eureka/internal/model"
	"eureka/internal/repository"
	"eureka/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DraftResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*model.Task, bool, error)
}

type TaskPublisher interface {
	Publish(ctx context.Context, userID uuid.UUID, req service.PublishRequest) (*model.Task, error)
}

type TaskService interface {
	Edit(ctx context.Context, userID uuid.UUID, req service.EditRequest) (*model.Task, error)
	Detail(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, page repository.PageRequest) (repository.Page[model.Task], error)
	ListByDate(ctx context.Context, userID uuid.UUID, start, end string, page repository.PageRequest) (repository.Page[model.Task], error)
	ListByStatus(ctx context.Context, userID uuid.UUID, statusID string, page repository.PageRequest) (repository.Page[model.Task], error)
	Search(ctx context.Context, userID uuid.UUID, query string, page repository.PageRequest) (repository.Page[model.Task], error)
	Star(ctx context.Context, userID, taskID uuid.UUID) error
	Unstar(ctx context.Context, userID, taskID uuid.UUID) error
	ListStarred(ctx context.Context, userID uuid.UUID, page repository.PageRequest) (repository.Page[model.FavoriteTask], error)
	Priorities(ctx context.Context, page repository.PageRequest) (repository.Page[model.TaskPriority], error)
	Statuses(ctx context.Context, page repository.PageRequest) (repository.Page[model.TaskStatus], error)
}

type TaskHandler struct {
	drafts    DraftResolver
	publisher TaskPublisher
	tasks     TaskService
}

func NewTaskHandler(drafts DraftResolver, publisher TaskPublisher, tasks TaskService) *TaskHandler {
	return &TaskHandler{drafts: drafts, publisher: publisher, tasks: tasks}
}

// CreateTemporary godoc
// @Summary      Get or create the draft task
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Success      201  {object}  Envelope{data=TaskResponse}
// @Success      200  {object}  Envelope{data=TaskResponse}
// @Failure      401  {object}  ErrorResponse
// @Router       /api/v1/task/create-temporary-task [post]
func (h *TaskHandler) CreateTemporary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	task, reused, err := h.drafts.Resolve(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if reused {
		respond(c, http.StatusOK, "task.create.temp.use.existing", toTask(task))
		return
	}
	respond(c, http.StatusCreated, "task.create.temp.success", toTask(task))
}

// Publish godoc
// @Summary      Publish a task snapshot
// @Tags         Tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.PublishRequest  true  "Task snapshot"
// @Success      200      {object}  Envelope{data=TaskResponse}
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/task/publish [post]
func (h *TaskHandler) Publish(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.publisher.Publish(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.publish.success", toTask(task))
}

// Edit godoc
// @Summary      Edit a task and its subtasks
// @Tags         Tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.EditRequest  true  "Task changes"
// @Success      200      {object}  Envelope{data=TaskResponse}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/task/edit [put]
func (h *TaskHandler) Edit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.tasks.Edit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.edit.success", toTask(task))
}

// Detail godoc
// @Summary      Get one of the caller's tasks
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  Envelope{data=TaskResponse}
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /api/v1/task/detail/{taskId} [get]
func (h *TaskHandler) Detail(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId", "task.not.found")
	if !ok {
		return
	}

	task, err := h.tasks.Detail(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.detail.success", toTask(task))
}

// Delete godoc
// @Summary      Delete a task with its subtasks and attachments
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  Envelope
// @Failure      404     {object}  ErrorResponse
// @Router       /api/v1/task/delete-task/{taskId} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId", "task.not.found")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.delete.success", nil)
}

// List godoc
// @Summary      Page through the caller's published tasks
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Param        page  query     int  false  "Zero-based page"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  Envelope{data=PageResponse[TaskResponse]}
// @Router       /api/v1/task/list-task [get]
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, err := pageRequest(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.list.success", toPage(tasks, toTask))
}

// ListByDate godoc
// @Summary      Page through tasks overlapping a day range
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Param        start  query     string  true   "First day, yyyy-MM-dd"
// @Param        end    query     string  true   "Last day, yyyy-MM-dd"
// @Param        page   query     int     false  "Zero-based page"
// @Param        size   query     int     false  "Page size"
// @Success      200    {object}  Envelope{data=PageResponse[TaskResponse]}
// @Failure      400    {object}  ErrorResponse
// @Router       /api/v1/task/get-list-by-date [get]
func (h *TaskHandler) ListByDate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, err := pageRequest(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	tasks, err := h.tasks.ListByDate(c.Request.Context(), userID, c.Query("start"), c.Query("end"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.list.success", toPage(tasks, toTask))
}

// ListByStatus godoc
// @Summary      Page through tasks in a status
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Param        statusId  path      string  true   "Status ID"
// @Param        page      query     int     false  "Zero-based page"
// @Param        size      query     int     false  "Page size"
// @Success      200       {object}  Envelope{data=PageResponse[TaskResponse]}
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/task/list-by-status/{statusId} [get]
func (h *TaskHandler) ListByStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, err := pageRequest(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	tasks, err := h.tasks.ListByStatus(c.Request.Context(), userID, c.Param("statusId"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.list.success", toPage(tasks, toTask))
}

// Search godoc
// @Summary      Page through the caller's tasks by name prefix
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Param        query  query     string  true   "Name prefix"
// @Param        page   query     int     false  "Zero-based page"
// @Param        size   query     int     false  "Page size"
// @Success      200    {object}  Envelope{data=PageResponse[TaskResponse]}
// @Failure      400    {object}  ErrorResponse
// @Router       /api/v1/task/search [get]
func (h *TaskHandler) Search(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, err := pageRequest(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	tasks, err := h.tasks.Search(c.Request.Context(), userID, c.Query("query"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.list.success", toPage(tasks, toTask))
}

// Star godoc
// @Summary      Star a task
// @Tags         Tasks
// @Security     BearerAuth
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  Envelope
// @Router       /api/v1/task/{taskId}/star [post]
func (h *TaskHandler) Star(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId", "task.not.found")
	if !ok {
		return
	}

	if err := h.tasks.Star(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.star.success", nil)
}

// Unstar godoc
// @Summary      Remove a star from a task
// @Tags         Tasks
// @Security     BearerAuth
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  Envelope
// @Router       /api/v1/task/{taskId}/star [delete]
func (h *TaskHandler) Unstar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId", "task.not.found")
	if !ok {
		return
	}

	if err := h.tasks.Unstar(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.unstar.success", nil)
}

// ListStarred godoc
// @Summary      Page through the caller's starred tasks
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Envelope{data=PageResponse[StarredTaskResponse]}
// @Router       /api/v1/task/starred [get]
func (h *TaskHandler) ListStarred(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, err := pageRequest(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	starred, err := h.tasks.ListStarred(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.starred.success", toPage(starred, toStarred))
}
