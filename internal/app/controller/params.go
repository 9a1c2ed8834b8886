package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	apperrors "github.com/serg-shkviro/eshop/internal/errors"
)

// parseIDParam reads a positive integer path parameter. On failure it
// writes a 422 response and returns false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidID, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads page/page_size query parameters. Out-of-range
// values are rejected rather than clamped.
func parsePagination(c *gin.Context) (repository.Pagination, bool) {
	page := 1
	pageSize := repository.DefaultPageSize

	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidRange, "page must be a positive integer")
			return repository.Pagination{}, false
		}
		page = v
	}
	if raw := c.Query("page_size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > repository.MaxPageSize {
			apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidRange, "page_size must be between 1 and 100")
			return repository.Pagination{}, false
		}
		pageSize = v
	}

	return repository.NewPagination(page, pageSize), true
}

// pageEnvelope is the uniform shape of every paginated listing.
func pageEnvelope(items interface{}, meta repository.PageMeta) gin.H {
	return gin.H{
		"items":      items,
		"pagination": meta,
	}
}
