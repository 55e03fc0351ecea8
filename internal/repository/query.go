package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/portal-api/internal/database"
)

// ErrUnsupportedSortField is returned when a list request asks for a sort field outside the entity whitelist.
var ErrUnsupportedSortField = errors.New("unsupported sort field")

// PageRequest describes one page of an ordered listing. Page is zero-based.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	Desc      bool
}

// Page is one page of results together with the total number of matches.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

// TotalPages returns the number of pages needed for Total items.
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// SortColumns maps API sort field names to database columns.
type SortColumns map[string]string

// Resolve returns the column for field. An empty field sorts by id.
func (s SortColumns) Resolve(field string) (string, error) {
	if field == "" {
		return "id", nil
	}
	column, ok := s[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSortField, field)
	}
	return column, nil
}

var (
	projectSortColumns = SortColumns{
		"id":           "id",
		"name":         "name",
		"status":       "status",
		"creationDate": "creation_date",
	}
	serverSortColumns = SortColumns{
		"id":   "id",
		"name": "name",
		"ip":   "ip",
		"os":   "os",
	}
	environmentSortColumns = SortColumns{
		"id":   "id",
		"type": "type",
	}
	taskSortColumns = SortColumns{
		"id":            "id",
		"title":         "title",
		"priority":      "priority",
		"status":        "status",
		"startDate":     "start_date",
		"dueDate":       "due_date",
		"completedDate": "completed_date",
		"assignedTo":    "assigned_to",
		"createdAt":     "created_at",
		"updatedAt":     "updated_at",
	}
	dailyNoteSortColumns = SortColumns{
		"id":        "id",
		"date":      "date",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
)

// findPage counts the rows matched by query, then loads the requested page in a stable order.
// The sort field is resolved before touching the database so a bad field never costs a query.
func findPage[T any](query *gorm.DB, columns SortColumns, req PageRequest, preload ...string) (*Page[T], error) {
	column, err := columns.Resolve(req.SortField)
	if err != nil {
		return nil, err
	}

	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	items := []T{}
	listQuery := base.Scopes(database.OrderBy(column, req.Desc), database.Paginate(req.Page, req.Size))
	for _, p := range preload {
		listQuery = listQuery.Preload(p)
	}
	if err := listQuery.Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{Items: items, Total: total, Page: req.Page, Size: req.Size}, nil
}
