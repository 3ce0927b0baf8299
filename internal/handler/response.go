package handler

import (
	"time"

	"eureka/internal/model"
	"eureka/internal/repository"
)

// Envelope wraps every successful response body.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

func toPage[M, T any](page repository.Page[M], convert func(*M) T) PageResponse[T] {
	items := make([]T, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, convert(&page.Items[i]))
	}
	return PageResponse[T]{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

type ReferenceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type SubTaskResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Done       bool    `json:"done"`
	AssignedTo *string `json:"assignedTo,omitempty"`
}

type AttachmentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

type TaskResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	IsPublish   bool                 `json:"isPublish"`
	TaskStart   *time.Time           `json:"taskStart,omitempty"`
	TaskEnd     *time.Time           `json:"taskEnd,omitempty"`
	CreatedBy   string               `json:"createdBy"`
	AssignedTo  *string              `json:"assignedTo,omitempty"`
	Priority    *ReferenceResponse   `json:"priority,omitempty"`
	Status      *ReferenceResponse   `json:"status,omitempty"`
	SubTasks    []SubTaskResponse    `json:"subTasks"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type StarredTaskResponse struct {
	ID        string        `json:"id"`
	StarredAt time.Time     `json:"starredAt"`
	Task      *TaskResponse `json:"task,omitempty"`
}

type UserResponse struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Status       string            `json:"status"`
	AuthProvider string            `json:"authProvider"`
	Attributes   map[string]string `json:"attributes"`
}

type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toPriority(p *model.TaskPriority) ReferenceResponse {
	return ReferenceResponse{ID: p.ID.String(), Name: p.Name, Description: p.Description, Color: p.Color}
}

func toStatus(s *model.TaskStatus) ReferenceResponse {
	return ReferenceResponse{ID: s.ID.String(), Name: s.Name, Description: s.Description, Color: s.Color}
}

func toAttachment(a *model.TaskAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:        a.ID.String(),
		TaskID:    a.TaskID.String(),
		Name:      a.Name,
		Type:      a.Type.String(),
		MimeType:  a.MimeType,
		CreatedAt: a.CreatedAt,
	}
}

func toTask(t *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		IsPublish:   t.IsPublish,
		TaskStart:   t.TaskStart,
		TaskEnd:     t.TaskEnd,
		CreatedBy:   t.CreatedBy.String(),
		SubTasks:    make([]SubTaskResponse, 0, len(t.SubTasks)),
		Attachments: make([]AttachmentResponse, 0, len(t.Attachments)),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		id := t.AssignedTo.String()
		resp.AssignedTo = &id
	}
	if t.Priority != nil {
		p := toPriority(t.Priority)
		resp.Priority = &p
	}
	if t.Status != nil {
		s := toStatus(t.Status)
		resp.Status = &s
	}
	for _, st := range t.SubTasks {
		sub := SubTaskResponse{ID: st.ID.String(), Name: st.Name, Done: st.Done}
		if st.AssignedTo != nil {
			id := st.AssignedTo.String()
			sub.AssignedTo = &id
		}
		resp.SubTasks = append(resp.SubTasks, sub)
	}
	for i := range t.Attachments {
		resp.Attachments = append(resp.Attachments, toAttachment(&t.Attachments[i]))
	}
	return resp
}

func toStarred(f *model.FavoriteTask) StarredTaskResponse {
	resp := StarredTaskResponse{ID: f.ID.String(), StarredAt: f.CreatedAt}
	if f.Task != nil {
		task := toTask(f.Task)
		resp.Task = &task
	}
	return resp
}

func toUser(u *model.User) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		Email:        u.Email,
		Status:       u.Status.String(),
		AuthProvider: u.AuthProvider.String(),
		Attributes:   u.Attributes(),
	}
}
