package ports

import (
	"context"

	"github.com/GoArmGo/PhotoShare/internal/domain"
)

// PhotoStorage определяет методы для взаимодействия с хранилищем фотографий
type PhotoStorage interface {
	FindAllPaginated(ctx context.Context, page int) (*domain.Page[domain.Photo], error)
	FindOneByID(ctx context.Context, id int64) (*domain.Photo, error)
	FindAllByUserPaginated(ctx context.Context, userID int64, page int) (*domain.Page[domain.Photo], error)
	FindAllWithTagPaginated(ctx context.Context, tagID int64, page int) (*domain.Page[domain.Photo], error)
	FindLinkedTags(ctx context.Context, photoID int64) ([]domain.Tag, error)
	Create(ctx context.Context, photo *domain.Photo) (int64, error)
	Update(ctx context.Context, photo *domain.Photo) (int64, error)
	Delete(ctx context.Context, id int64) (domain.RemovedPhotos, error)
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	FindOneByID(ctx context.Context, id int64) (*domain.User, error)
	FindOneByLogin(ctx context.Context, login string) (*domain.User, error)
	FindForUniqueness(ctx context.Context, login string, excludeID int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (int64, error)
	// Register создает пользователя и пустые userdata атомарно
	Register(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, user *domain.User) (int64, error)
	GetUserRoles(ctx context.Context, userID int64) ([]string, error)
	LoadUserByLogin(ctx context.Context, login string) (*domain.Credentials, error)
	Delete(ctx context.Context, id int64) (domain.RemovedPhotos, error)
}

// UserdataStorage — имя и фамилия пользователя
type UserdataStorage interface {
	FindOneByUserID(ctx context.Context, userID int64) (*domain.Userdata, error)
	Update(ctx context.Context, data *domain.Userdata) (int64, error)
}

// ProfileStorage — пользователь вместе с userdata
type ProfileStorage interface {
	FindOneByID(ctx context.Context, id int64) (*domain.Profile, error)
	FindAllPaginated(ctx context.Context, page int) (*domain.Page[domain.Profile], error)
}

// TagStorage определяет методы для работы с тегами
type TagStorage interface {
	FindAll(ctx context.Context) ([]domain.Tag, error)
	FindAllPaginated(ctx context.Context, page int) (*domain.Page[domain.Tag], error)
	FindOneByID(ctx context.Context, id int64) (*domain.Tag, error)
	FindIDByName(ctx context.Context, name string) (int64, bool, error)
	FindForUniqueness(ctx context.Context, name string, excludeID int64) (*domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// RatingStorage определяет методы для работы с оценками
type RatingStorage interface {
	HasUserRated(ctx context.Context, photoID, userID int64) (bool, error)
	AverageForPhoto(ctx context.Context, photoID int64) (float64, bool, error)
	Create(ctx context.Context, rating *domain.Rating) (int64, error)
}

// CommentStorage определяет методы для работы с комментариями
type CommentStorage interface {
	FindOneByID(ctx context.Context, id int64) (*domain.Comment, error)
	FindAllOfPhotoPaginated(ctx context.Context, photoID int64, page int) (*domain.Page[domain.Comment], error)
	Create(ctx context.Context, comment *domain.Comment) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// PasswordHasher хеширует и проверяет пароли
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
