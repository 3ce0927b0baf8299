package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"sync"
	"testing"
	"time"

	"eureka/internal/auth"
	"eureka/internal/model"
	"eureka/internal/repository"
	"eureka/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStore(t *testing.T) (*repository.Store, *gorm.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return repository.NewStore(db), db
}

func createUser(t *testing.T, store *repository.Store, email string, status model.UserStatus) *model.User {
	t.Helper()
	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		AuthProvider: model.AuthProviderBasic,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func createPriority(t *testing.T, db *gorm.DB, name string) *model.TaskPriority {
	t.Helper()
	priority := &model.TaskPriority{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(priority).Error)
	return priority
}

func createStatus(t *testing.T, db *gorm.DB, name string) *model.TaskStatus {
	t.Helper()
	status := &model.TaskStatus{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(status).Error)
	return status
}

func countRows(t *testing.T, db *gorm.DB, m any, where ...any) int64 {
	t.Helper()
	var n int64
	query := db.Model(m)
	if len(where) > 0 {
		query = query.Where(where[0], where[1:]...)
	}
	require.NoError(t, query.Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }

type fakeBlobStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	removed []string
	err     error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{saved: map[string][]byte{}}
}

func (f *fakeBlobStore) Save(_ context.Context, id uuid.UUID, _ string, content io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	name := id.String()
	f.saved[name] = data
	return name, nil
}

func (f *fakeBlobStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.saved[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobStore) Remove(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, name)
	f.removed = append(f.removed, name)
	return nil
}

type sentMail struct {
	To       string
	Subject  string
	Template string
	Data     any
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, template string, data any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Template: template, Data: data})
	return nil
}

func (f *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

type fakeVerifier struct {
	identity *auth.GoogleIdentity
}

func (f *fakeVerifier) Verify(_ context.Context, rawToken string) (*auth.GoogleIdentity, error) {
	if f.identity == nil || rawToken != "good-token" {
		return nil, errors.New("token rejected")
	}
	return f.identity, nil
}
