package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPriorities godoc
// @Summary      Page through task priorities
// @Tags         Reference
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Envelope{data=PageResponse[ReferenceResponse]}
// @Router       /api/v1/task/priority-list [get]
func (h *TaskHandler) ListPriorities(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	priorities, err := h.tasks.Priorities(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.priority.list.success", toPage(priorities, toPriority))
}

// ListStatuses godoc
// @Summary      Page through task statuses
// @Tags         Reference
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Envelope{data=PageResponse[ReferenceResponse]}
// @Router       /api/v1/task/status-list [get]
func (h *TaskHandler) ListStatuses(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	statuses, err := h.tasks.Statuses(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.status.list.success", toPage(statuses, toStatus))
}
