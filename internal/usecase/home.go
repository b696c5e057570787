package usecase

import (
	"context"

	"github.com/GoArmGo/PhotoShare/internal/domain"
)

// Категории поиска
const (
	SearchPhoto = "photo"
	SearchUser  = "user"
)

// RegisterInput — данные формы регистрации
type RegisterInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Mail     string `json:"mail"`
}

// SearchResult — куда ведет поиск: тег (для категории photo) или пользователь
type SearchResult struct {
	Category string `json:"category"`
	ID       int64  `json:"id"`
}

// Session — выданный при входе токен
type Session struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Login  string `json:"login"`
	Role   string `json:"role"`
}

// HomeUseCase — регистрация и поиск
type HomeUseCase interface {
	// Register создает пользователя с ролью ROLE_USER и пустыми userdata
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Search ищет тег по имени (photo) или пользователя по логину (user)
	Search(ctx context.Context, category, value string) (*SearchResult, error)
}

// AuthUseCase — вход по логину и паролю и проверка токена доступа
type AuthUseCase interface {
	Login(ctx context.Context, login, password string) (*Session, error)
	Authenticate(ctx context.Context, token string) (domain.Viewer, error)
}
