package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"strings"
	"time"

	"eureka/internal/model"
	"eureka/internal/repository"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLen is how much of an upload is read to detect its MIME type.
const sniffLen = 3072

type Upload struct {
	Filename string
	Content  io.Reader
}

// AttachmentManager stores attachment payloads and keeps each task within
// its attachment cap.
type AttachmentManager struct {
	store *repository.Store
	blobs BlobStore
	now   func() time.Time
}

func NewAttachmentManager(store *repository.Store, blobs BlobStore) *AttachmentManager {
	return &AttachmentManager{store: store, blobs: blobs, now: time.Now}
}

// Attach stores the upload and records it against the task. Nothing is
// recorded when the blob store fails.
func (m *AttachmentManager) Attach(ctx context.Context, userID, taskID uuid.UUID, upload Upload) (*model.TaskAttachment, error) {
	task, err := m.store.Tasks.GetByID(ctx, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, fail(ErrNotFound, "task.attachment.upload.task.not.found", err)
	}
	if err != nil {
		return nil, err
	}
	if task.CreatedBy != userID {
		return nil, fail(ErrForbidden, "forbidden", nil)
	}

	count, err := m.store.Attachments.CountLive(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxAttachmentsPerTask {
		return nil, fail(ErrLimitExceeded, "task.attachment.upload.failed.max", nil)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fail(ErrStorage, "task.attachment.upload.file.not.uploaded", err)
	}
	if n == 0 {
		return nil, fail(ErrValidation, "task.attachment.upload.file.empty", nil)
	}
	head = head[:n]
	mime := mimetype.Detect(head)

	id := uuid.New()
	content := io.MultiReader(bytes.NewReader(head), upload.Content)
	name, err := m.blobs.Save(ctx, id, upload.Filename, content)
	if err != nil {
		return nil, fail(ErrStorage, "task.attachment.upload.file.not.uploaded", err)
	}

	now := m.now().UTC()
	attachment := &model.TaskAttachment{
		ID:        id,
		TaskID:    taskID,
		Name:      name,
		Type:      attachmentType(mime.String()),
		MimeType:  mime.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Attachments.Create(ctx, attachment); err != nil {
		if rmErr := m.blobs.Remove(ctx, name); rmErr != nil {
			log.Printf("⚠️  Orphaned attachment blob %s: %v", name, rmErr)
		}
		return nil, err
	}
	return attachment, nil
}

// Detach soft-deletes an attachment and returns it as it was before.
func (m *AttachmentManager) Detach(ctx context.Context, userID, attachmentID uuid.UUID) (*model.TaskAttachment, error) {
	var prior *model.TaskAttachment
	err := m.store.Transaction(ctx, func(tx *repository.Store) error {
		attachment, err := ownedAttachment(ctx, tx, userID, attachmentID)
		if err != nil {
			return err
		}

		if err := tx.Attachments.SoftDelete(ctx, attachmentID); err != nil {
			if errors.Is(err, repository.ErrAttachmentNotFound) {
				return fail(ErrNotFound, "task.attachment.not.found", err)
			}
			return err
		}
		prior = attachment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prior, nil
}

// Open returns a live attachment with a reader over its stored payload.
// The caller closes the reader.
func (m *AttachmentManager) Open(ctx context.Context, userID, attachmentID uuid.UUID) (*model.TaskAttachment, io.ReadCloser, error) {
	attachment, err := ownedAttachment(ctx, m.store, userID, attachmentID)
	if err != nil {
		return nil, nil, err
	}

	content, err := m.blobs.Open(ctx, attachment.Name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fail(ErrNotFound, "task.attachment.not.found", err)
	}
	if err != nil {
		return nil, nil, fail(ErrStorage, "task.attachment.download.failed", err)
	}
	return attachment, content, nil
}

// ownedAttachment loads a live attachment whose task belongs to userID.
func ownedAttachment(ctx context.Context, store *repository.Store, userID, attachmentID uuid.UUID) (*model.TaskAttachment, error) {
	attachment, err := store.Attachments.GetByID(ctx, attachmentID)
	if errors.Is(err, repository.ErrAttachmentNotFound) {
		return nil, fail(ErrNotFound, "task.attachment.not.found", err)
	}
	if err != nil {
		return nil, err
	}

	task, err := store.Tasks.GetByID(ctx, attachment.TaskID)
	if err != nil && !errors.Is(err, repository.ErrTaskNotFound) {
		return nil, err
	}
	if task == nil || task.CreatedBy != userID {
		return nil, fail(ErrForbidden, "forbidden", nil)
	}
	return attachment, nil
}

func attachmentType(mime string) model.AttachmentType {
	if strings.HasPrefix(mime, "image/") {
		return model.AttachmentImage
	}
	return model.AttachmentDocument
}
