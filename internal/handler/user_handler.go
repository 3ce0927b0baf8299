package handler

import (
	"context"
	"net/http"

	"eureka/internal/model"
	"eureka/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Update(ctx context.Context, userID uuid.UUID, req service.UpdateProfileRequest) (*model.User, error)
}

type UserHandler struct {
	profiles ProfileService
}

func NewUserHandler(profiles ProfileService) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// Profile godoc
// @Summary      Get the caller's profile
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Envelope{data=UserResponse}
// @Failure      401  {object}  ErrorResponse
// @Router       /api/v1/user/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "user.profile.get.success", toUser(user))
}

// UpdateProfile godoc
// @Summary      Set profile attributes
// @Tags         Users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.UpdateProfileRequest  true  "Attributes"
// @Success      200      {object}  Envelope{data=UserResponse}
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/user/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.profiles.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "user.profile.success", toUser(user))
}
