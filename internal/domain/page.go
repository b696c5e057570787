package domain

// Размеры страниц для каждого типа записей.
const (
	PhotoPageSize   = 4
	CommentPageSize = 3
	TagPageSize     = 6
	UserPageSize    = 6
	ProfilePageSize = 30
)

// Page — одна страница выборки и ее метаданные.
type Page[T any] struct {
	Items       []T   `json:"data"`
	CurrentPage int   `json:"page"`
	PageSize    int   `json:"max_results"`
	TotalPages  int   `json:"pages_number"`
	TotalItems  int64 `json:"total_results"`
}
