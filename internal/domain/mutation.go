package domain

// Mutation — запись для сохранения: либо новая, либо существующая с известным ID.
// Save в репозиториях выбирает INSERT или UPDATE по варианту, а не по полям записи.
type Mutation[T any] struct {
	id     int64
	Record T
}

// NewRecord оборачивает запись, которую нужно вставить.
func NewRecord[T any](rec T) Mutation[T] {
	return Mutation[T]{Record: rec}
}

// Existing оборачивает запись с ID для обновления.
func Existing[T any](id int64, rec T) Mutation[T] {
	return Mutation[T]{id: id, Record: rec}
}

// ID возвращает идентификатор и признак того, что запись существует.
func (m Mutation[T]) ID() (int64, bool) {
	return m.id, m.id > 0
}

// SaveResult — итог Save: ID новой записи либо число обновленных строк.
type SaveResult struct {
	ID           int64
	RowsAffected int64
	Created      bool
}
