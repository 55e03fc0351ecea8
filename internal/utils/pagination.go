package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/portal-api/internal/constants"
)

// PaginationParams holds the paging and ordering parameters of a list request.
// Page is zero-based.
type PaginationParams struct {
	Page        int
	Size        int
	OrderBy     string
	IsOrderDesc bool
}

// GetPaginationParams extracts and validates page, size, orderBy and isOrderDesc from the query string.
// Out-of-range values fall back to the defaults and page is capped so the offset cannot overflow; the sort field itself is validated by the repository.
func GetPaginationParams(c *gin.Context, defaultOrderBy string, defaultDesc bool) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	if err != nil || page < 0 {
		page = constants.DefaultPage
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || size < 1 || size > constants.MaxPageSize {
		size = constants.DefaultPageSize
	}
	// keeps page*size from overflowing the offset
	if page > math.MaxInt/size {
		page = math.MaxInt / size
	}

	desc := defaultDesc
	if raw, ok := c.GetQuery("isOrderDesc"); ok {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			desc = parsed
		}
	}

	return PaginationParams{
		Page:        page,
		Size:        size,
		OrderBy:     c.DefaultQuery("orderBy", defaultOrderBy),
		IsOrderDesc: desc,
	}
}
