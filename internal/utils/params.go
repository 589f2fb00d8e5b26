package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// SortParams holds the raw sort parameters of an admin listing
type SortParams struct {
	Field string
	Order string
}

// GetSortParams extracts the sort and order query parameters
func GetSortParams(c *gin.Context) SortParams {
	return SortParams{
		Field: strings.TrimSpace(c.DefaultQuery("sort", "id")),
		Order: strings.ToLower(strings.TrimSpace(c.DefaultQuery("order", "asc"))),
	}
}

// ParseIDParam parses a positive numeric path parameter
func ParseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
