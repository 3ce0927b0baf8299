package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"eureka/internal/middleware"
	"eureka/internal/model"
	"eureka/internal/repository"
	"eureka/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDraftResolver struct {
	mock.Mock
}

func (m *MockDraftResolver) Resolve(ctx context.Context, userID uuid.UUID) (*model.Task, bool, error) {
	args := m.Called(ctx, userID)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Bool(1), args.Error(2)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, userID uuid.UUID, req service.PublishRequest) (*model.Task, error) {
	args := m.Called(ctx, userID, req)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Edit(ctx context.Context, userID uuid.UUID, req service.EditRequest) (*model.Task, error) {
	args := m.Called(ctx, userID, req)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Detail(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *MockTaskService) List(ctx context.Context, userID uuid.UUID, page repository.PageRequest) (repository.Page[model.Task], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(repository.Page[model.Task]), args.Error(1)
}

func (m *MockTaskService) ListByDate(ctx context.Context, userID uuid.UUID, start, end string, page repository.PageRequest) (repository.Page[model.Task], error) {
	args := m.Called(ctx, userID, start, end, page)
	return args.Get(0).(repository.Page[model.Task]), args.Error(1)
}

func (m *MockTaskService) ListByStatus(ctx context.Context, userID uuid.UUID, statusID string, page repository.PageRequest) (repository.Page[model.Task], error) {
	args := m.Called(ctx, userID, statusID, page)
	return args.Get(0).(repository.Page[model.Task]), args.Error(1)
}

func (m *MockTaskService) Search(ctx context.Context, userID uuid.UUID, query string, page repository.PageRequest) (repository.Page[model.Task], error) {
	args := m.Called(ctx, userID, query, page)
	return args.Get(0).(repository.Page[model.Task]), args.Error(1)
}

func (m *MockTaskService) Star(ctx context.Context, userID, taskID uuid.UUID) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *MockTaskService) Unstar(ctx context.Context, userID, taskID uuid.UUID) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *MockTaskService) ListStarred(ctx context.Context, userID uuid.UUID, page repository.PageRequest) (repository.Page[model.FavoriteTask], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(repository.Page[model.FavoriteTask]), args.Error(1)
}

func (m *MockTaskService) Priorities(ctx context.Context, page repository.PageRequest) (repository.Page[model.TaskPriority], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(repository.Page[model.TaskPriority]), args.Error(1)
}

func (m *MockTaskService) Statuses(ctx context.Context, page repository.PageRequest) (repository.Page[model.TaskStatus], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(repository.Page[model.TaskStatus]), args.Error(1)
}

type MockAttachmentManager struct {
	mock.Mock
}

func (m *MockAttachmentManager) Attach(ctx context.Context, userID, taskID uuid.UUID, upload service.Upload) (*model.TaskAttachment, error) {
	args := m.Called(ctx, userID, taskID, upload)
	attachment, _ := args.Get(0).(*model.TaskAttachment)
	return attachment, args.Error(1)
}

func (m *MockAttachmentManager) Detach(ctx context.Context, userID, attachmentID uuid.UUID) (*model.TaskAttachment, error) {
	args := m.Called(ctx, userID, attachmentID)
	attachment, _ := args.Get(0).(*model.TaskAttachment)
	return attachment, args.Error(1)
}

func (m *MockAttachmentManager) Open(ctx context.Context, userID, attachmentID uuid.UUID) (*model.TaskAttachment, io.ReadCloser, error) {
	args := m.Called(ctx, userID, attachmentID)
	attachment, _ := args.Get(0).(*model.TaskAttachment)
	content, _ := args.Get(1).(io.ReadCloser)
	return attachment, content, args.Error(2)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUpWithEmail(ctx context.Context, req service.SignUpRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAuthService) ConfirmOTP(ctx context.Context, req service.OTPConfirmationRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAuthService) CompleteProfile(ctx context.Context, req service.CompleteProfileRequest) (*service.Session, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*service.Session)
	return session, args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, req service.SignInRequest) (*service.Session, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*service.Session)
	return session, args.Error(1)
}

func (m *MockAuthService) SignInWithGoogle(ctx context.Context, req service.GoogleSignInRequest) (*service.Session, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*service.Session)
	return session, args.Error(1)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, req service.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthService) ConfirmResetLink(ctx context.Context, req service.ResetLinkConfirmationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) SetNewPassword(ctx context.Context, token string, req service.NewPasswordRequest) error {
	return m.Called(ctx, token, req).Error(0)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, userID uuid.UUID, req service.UpdateProfileRequest) (*model.User, error) {
	args := m.Called(ctx, userID, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

// newRouter returns an engine that authenticates every request as userID.
func newRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.UserIDKey, userID)
		}
		c.Next()
	})
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	return out
}

func serviceErr(kind error, key string) error {
	return &service.Error{Kind: kind, Key: key}
}
