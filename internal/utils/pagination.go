package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nexusboard/nexusboard-api/internal/constants"
)

// PaginationParams holds the pagination parameters. Requested is false
// when the client sent neither page nor limit, in which case callers
// return the full list.
type PaginationParams struct {
	Page      int
	Limit     int
	Offset    int
	Requested bool
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	_, hasPage := c.GetQuery("page")
	_, hasLimit := c.GetQuery("limit")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:      page,
		Limit:     limit,
		Offset:    offset,
		Requested: hasPage || hasLimit,
	}
}
