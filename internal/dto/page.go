package dto

import "github.com/yukikurage/portal-api/internal/repository"

// PageResponse is the paged list envelope the portal clients read (`data.content`)
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
}

// ToPageResponse converts every item of page with convert
func ToPageResponse[M, D any](page *repository.Page[M], convert func(M) D) PageResponse[D] {
	return PageResponse[D]{
		Content:       ToList(page.Items, convert),
		TotalElements: page.Total,
		TotalPages:    page.TotalPages(),
		Page:          page.Page,
		Size:          page.Size,
	}
}

// ToList converts items with convert; the result is never nil so it encodes as [].
func ToList[M, D any](items []M, convert func(M) D) []D {
	out := make([]D, len(items))
	for i, item := range items {
		out[i] = convert(item)
	}
	return out
}
