package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	apierrors "github.com/yukikurage/portal-api/internal/errors"
	"github.com/yukikurage/portal-api/internal/middleware"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/utils"
)

// pageRequest reads page, size, orderBy and isOrderDesc into a repository page request
func pageRequest(c *gin.Context, defaultOrderBy string, defaultDesc bool) repository.PageRequest {
	params := utils.GetPaginationParams(c, defaultOrderBy, defaultDesc)
	return repository.PageRequest{
		Page:      params.Page,
		Size:      params.Size,
		SortField: params.OrderBy,
		Desc:      params.IsOrderDesc,
	}
}

// queryPtr returns the query parameter when present and not blank
func queryPtr(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}

// bindJSON decodes the body into req and answers 400 when it cannot
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return false
	}
	return true
}

// pathID returns the id validated by middleware.RequireID
func pathID(c *gin.Context, param string) (uint64, bool) {
	id, ok := middleware.GetID(c, param)
	if !ok {
		apierrors.BadRequest(c, "Invalid "+param)
	}
	return id, ok
}

// pathDate parses a YYYY-MM-DD path parameter
func pathDate(c *gin.Context, param string) (datatypes.Date, bool) {
	d, err := utils.ParseDate(c.Param(param))
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return datatypes.Date{}, false
	}
	return d, true
}

// queryDate parses a required YYYY-MM-DD query parameter
func queryDate(c *gin.Context, key string) (datatypes.Date, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		apierrors.BadRequest(c, key+" is required")
		return datatypes.Date{}, false
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return datatypes.Date{}, false
	}
	return d, true
}

// pathInt parses an integer path parameter
func pathInt(c *gin.Context, param string) (int, bool) {
	v, err := strconv.Atoi(c.Param(param))
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+param)
		return 0, false
	}
	return v, true
}
