package handler

import (
	"errors"
	"log"
	"net/http"

	"eureka/internal/i18n"
	"eureka/internal/middleware"
	"eureka/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var statusByKind = []struct {
	kind   error
	status int
}{
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrLimitExceeded, http.StatusForbidden},
	{service.ErrStorage, http.StatusBadGateway},
	{service.ErrNoContent, http.StatusInternalServerError},
}

// respondError writes the translated message for a service error. Anything
// else is logged and reported as an internal error.
func respondError(c *gin.Context, err error) {
	var serr *service.Error
	if !errors.As(err, &serr) {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: i18n.T("internal.error"), Code: "internal.error"})
		return
	}

	status := http.StatusInternalServerError
	for _, m := range statusByKind {
		if errors.Is(serr, m.kind) {
			status = m.status
			break
		}
	}

	message := i18n.T(serr.Key)
	// parse failures carry the parser's own explanation
	if status == http.StatusBadRequest && serr.Err != nil {
		message += ": " + serr.Err.Error()
	}
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, ErrorResponse{Error: message, Code: serr.Key})
}

func badRequest(c *gin.Context, err error) {
	respondError(c, &service.Error{Kind: service.ErrValidation, Key: "request.invalid", Err: err})
}

func respond(c *gin.Context, status int, key string, data any) {
	c.JSON(status, Envelope{Message: i18n.T(key), Data: data})
}

// currentUser reads the id set by the auth middleware, answering 401 when absent.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: i18n.T("unauthorized"), Code: "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a uuid path parameter; a malformed id cannot name anything.
func pathID(c *gin.Context, name, notFoundKey string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, &service.Error{Kind: service.ErrNotFound, Key: notFoundKey, Err: err})
		return uuid.Nil, false
	}
	return id, true
}
