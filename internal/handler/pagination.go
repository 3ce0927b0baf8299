package handler

import (
	"eureka/internal/repository"

	"github.com/gin-gonic/gin"
)

// pageQuery is the zero-based page and the page size read from the query string.
type pageQuery struct {
	Page int  `form:"page" binding:"min=0"`
	Size *int `form:"size" binding:"omitempty,min=1"`
}

func pageRequest(c *gin.Context) (repository.PageRequest, error) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return repository.PageRequest{}, err
	}

	req := repository.PageRequest{Page: q.Page}
	if q.Size != nil {
		req.Size = *q.Size
	}
	return req.Normalize(), nil
}
