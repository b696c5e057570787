package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
)

// TokenManager подписывает и проверяет токены доступа
type TokenManager interface {
	Issue(userID int64, login, role string) (string, error)
	Parse(token string) (domain.Viewer, error)
}

type authUseCase struct {
	users  ports.UserStorage
	hasher ports.PasswordHasher
	tokens TokenManager
	logger *slog.Logger
}

// NewAuthUseCase создает новый экземпляр AuthUseCase
func NewAuthUseCase(users ports.UserStorage, hasher ports.PasswordHasher, tokens TokenManager, logger *slog.Logger) AuthUseCase {
	return &authUseCase{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Login проверяет пароль и выдает токен. Неизвестный логин и неверный
// пароль дают одну и ту же ошибку domain.ErrUnauthorized.
func (uc *authUseCase) Login(ctx context.Context, login, password string) (*Session, error) {
	creds, err := uc.users.LoadUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := uc.hasher.Compare(creds.Password, password); err != nil {
		uc.logger.Warn("login failed", "login", login)
		return nil, domain.ErrUnauthorized
	}

	role := primaryRole(creds.Roles)
	token, err := uc.tokens.Issue(creds.ID, creds.Login, role)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, UserID: creds.ID, Login: creds.Login, Role: role}, nil
}

// Authenticate проверяет токен и то, что его владелец еще существует.
// Роль берется из БД, а не из токена.
func (uc *authUseCase) Authenticate(ctx context.Context, token string) (domain.Viewer, error) {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return domain.Viewer{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	user, err := uc.users.FindOneByID(ctx, claims.UserID)
	if err != nil {
		return domain.Viewer{}, err
	}
	if user == nil {
		uc.logger.Warn("token of a removed user", "user_id", claims.UserID)
		return domain.Viewer{}, fmt.Errorf("%w: пользователь %d не найден", domain.ErrUnauthorized, claims.UserID)
	}

	roles, err := uc.users.GetUserRoles(ctx, user.ID)
	if err != nil {
		return domain.Viewer{}, err
	}
	return domain.Viewer{UserID: user.ID, Role: primaryRole(roles)}, nil
}

// primaryRole выбирает ROLE_ADMIN, если он есть среди ролей
func primaryRole(roles []string) string {
	for _, r := range roles {
		if r == domain.RoleAdmin {
			return r
		}
	}
	if len(roles) > 0 {
		return roles[0]
	}
	return domain.RoleUser
}
