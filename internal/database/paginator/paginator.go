// Package paginator делит выборку на страницы фиксированного размера.
package paginator

import (
	"context"
	"fmt"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/jmoiron/sqlx"
)

// Query — пара запросов для одной постраничной выборки.
// Select выбирает полные строки с нужной сортировкой, без LIMIT/OFFSET.
// Count возвращает одну строку с общим числом записей.
// Оба запроса используют плейсхолдеры "?" и общие аргументы Args.
type Query struct {
	Select string
	Count  string
	Args   []any
}

// Paginate возвращает страницу page размером size.
// Номер страницы меньше 1 считается равным 1. Страница за последней
// возвращается пустой, но с корректными метаданными.
func Paginate[T any](ctx context.Context, db sqlx.ExtContext, q Query, page, size int) (*domain.Page[T], error) {
	if size < 1 {
		return nil, fmt.Errorf("некорректный размер страницы: %d", size)
	}
	if page < 1 {
		page = 1
	}

	var total int64
	if err := sqlx.GetContext(ctx, db, &total, db.Rebind(q.Count), q.Args...); err != nil {
		return nil, fmt.Errorf("ошибка подсчета записей: %w", err)
	}

	result := &domain.Page[T]{
		Items:       make([]T, 0, size),
		CurrentPage: page,
		PageSize:    size,
		TotalPages:  TotalPages(total, size),
		TotalItems:  total,
	}

	offset := Offset(page, size)
	if int64(offset) >= total {
		return result, nil
	}

	args := make([]any, 0, len(q.Args)+2)
	args = append(args, q.Args...)
	args = append(args, size, offset)

	if err := sqlx.SelectContext(ctx, db, &result.Items, db.Rebind(q.Select+" LIMIT ? OFFSET ?"), args...); err != nil {
		return nil, fmt.Errorf("ошибка выборки страницы %d: %w", page, err)
	}
	return result, nil
}

// Offset — смещение первой строки страницы.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// TotalPages = ceil(total/size).
func TotalPages(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
