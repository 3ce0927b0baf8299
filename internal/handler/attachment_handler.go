package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"

	"eureka/internal/i18n"
	"eureka/internal/model"
	"eureka/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AttachmentManager interface {
	Attach(ctx context.Context, userID, taskID uuid.UUID, upload service.Upload) (*model.TaskAttachment, error)
	Detach(ctx context.Context, userID, attachmentID uuid.UUID) (*model.TaskAttachment, error)
	Open(ctx context.Context, userID, attachmentID uuid.UUID) (*model.TaskAttachment, io.ReadCloser, error)
}

type AttachmentHandler struct {
	attachments    AttachmentManager
	maxUploadBytes int64
}

func NewAttachmentHandler(attachments AttachmentManager, maxUploadBytes int64) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments, maxUploadBytes: maxUploadBytes}
}

// Upload godoc
// @Summary      Attach a file to a task
// @Tags         Attachments
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        taskId  formData  string  true  "Task ID"
// @Param        file    formData  file    true  "Attachment"
// @Success      201     {object}  Envelope{data=AttachmentResponse}
// @Failure      403     {object}  ErrorResponse
// @Failure      413     {object}  ErrorResponse
// @Router       /api/v1/task/upload-attachment [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: i18n.T("task.attachment.upload.file.too.large"),
				Code:  "task.attachment.upload.file.too.large",
			})
			return
		}
		badRequest(c, err)
		return
	}

	taskID, err := uuid.Parse(c.PostForm("taskId"))
	if err != nil {
		respondError(c, &service.Error{Kind: service.ErrNotFound, Key: "task.attachment.upload.task.not.found", Err: err})
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	attachment, err := h.attachments.Attach(c.Request.Context(), userID, taskID, service.Upload{
		Filename: header.Filename,
		Content:  file,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "task.attachment.upload.success", toAttachment(attachment))
}

// Delete godoc
// @Summary      Remove an attachment
// @Tags         Attachments
// @Security     BearerAuth
// @Produce      json
// @Param        attachmentId  path      string  true  "Attachment ID"
// @Success      200           {object}  Envelope{data=AttachmentResponse}
// @Failure      404           {object}  ErrorResponse
// @Router       /api/v1/task/delete-attachment/{attachmentId} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachmentId", "task.attachment.not.found")
	if !ok {
		return
	}

	attachment, err := h.attachments.Detach(c.Request.Context(), userID, attachmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.attachment.delete.success", toAttachment(attachment))
}

// Download godoc
// @Summary      Download an attachment's content
// @Tags         Attachments
// @Security     BearerAuth
// @Produce      octet-stream
// @Param        attachmentId  path      string  true  "Attachment ID"
// @Success      200           {file}    file
// @Failure      403           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Router       /api/v1/task/attachment/{attachmentId} [get]
func (h *AttachmentHandler) Download(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachmentId", "task.attachment.not.found")
	if !ok {
		return
	}

	attachment, content, err := h.attachments.Open(c.Request.Context(), userID, attachmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer content.Close()

	c.DataFromReader(http.StatusOK, -1, attachment.MimeType, content, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Name}),
	})
}
