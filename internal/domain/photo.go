package domain

import "time"

// Photo представляет загруженную фотографию,
// соответствует таблице photos в бд
type Photo struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Source          string    `json:"source" db:"source"`
	UserID          int64     `json:"user_id" db:"user_id"`
	PublicationDate time.Time `json:"publication_date" db:"publication_date"`

	// Login автора, заполняется при выборке с join на users
	Login string `json:"login,omitempty" db:"login"`
	// TagIDs связанных тегов, заполняется FindOneByID и используется при сохранении
	TagIDs []int64 `json:"tags,omitempty" db:"-"`
}

// Tag представляет модель тега,
// соответствует таблице tags в бд
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// PhotoTag связующая запись many-to-many между Photo и Tag,
// соответствует таблице photo_tags в бд
type PhotoTag struct {
	PhotoID int64 `json:"photo_id" db:"photo_id"`
	TagID   int64 `json:"tag_id" db:"tag_id"`
}

// Rating — оценка 1..5, не более одной на пару (user, photo).
type Rating struct {
	ID      int64 `json:"id" db:"id"`
	Value   int   `json:"value" db:"value"`
	PhotoID int64 `json:"photo_id" db:"photo_id"`
	UserID  int64 `json:"user_id" db:"user_id"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// Comment — комментарий к фото.
type Comment struct {
	ID              int64     `json:"id" db:"id"`
	Text            string    `json:"text" db:"text"`
	PublicationDate time.Time `json:"publication_date" db:"publication_date"`
	UserID          int64     `json:"user_id" db:"user_id"`
	PhotoID         int64     `json:"photo_id" db:"photo_id"`

	Login string `json:"login,omitempty" db:"login"`
}

// RemovedPhotos — фото, удаленные каскадом; Sources нужны для очистки файлового хранилища.
type RemovedPhotos struct {
	PhotoIDs []int64
	Sources  []string
}
