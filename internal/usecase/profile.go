package usecase

import (
	"context"

	"github.com/GoArmGo/PhotoShare/internal/domain"
)

// ProfileView — профиль пользователя и страница его фото
type ProfileView struct {
	Profile domain.Profile             `json:"profile"`
	Photos  *domain.Page[domain.Photo] `json:"photos"`
}

// EditUserInput — новые почта и (необязательно) пароль
type EditUserInput struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

// EditUserdataInput — новые имя и фамилия
type EditUserdataInput struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// ProfileUseCase определяет бизнес-логику работы с профилями
type ProfileUseCase interface {
	List(ctx context.Context, page int) (*domain.Page[domain.Profile], error)
	View(ctx context.Context, id int64, page int) (*ProfileView, error)
	EditUser(ctx context.Context, viewer domain.Viewer, id int64, in EditUserInput) error
	EditUserdata(ctx context.Context, viewer domain.Viewer, id int64, in EditUserdataInput) error
	// Delete удаляет пользователя со всеми его данными, доступно ему самому и администратору
	Delete(ctx context.Context, viewer domain.Viewer, id int64) error
}
