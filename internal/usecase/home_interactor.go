package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
)

type homeUseCase struct {
	users  ports.UserStorage
	tags   ports.TagStorage
	logger *slog.Logger
}

// NewHomeUseCase создает новый экземпляр HomeUseCase
func NewHomeUseCase(users ports.UserStorage, tags ports.TagStorage, logger *slog.Logger) HomeUseCase {
	return &homeUseCase{users: users, tags: tags, logger: logger}
}

func (uc *homeUseCase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	login := strings.TrimSpace(in.Login)
	if err := checkLength("login", login, MinLoginLen, MaxLoginLen); err != nil {
		return nil, err
	}
	if err := checkLength("password", in.Password, MinPasswordLen, MaxPasswordLen); err != nil {
		return nil, err
	}
	mail := strings.TrimSpace(in.Mail)
	if err := checkMail(mail); err != nil {
		return nil, err
	}

	existing, err := uc.users.FindForUniqueness(ctx, login, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("логин %q: %w", login, domain.ErrConflict)
	}

	user := &domain.User{Login: login, Password: in.Password, Mail: mail, RoleID: domain.RoleUserID}
	if _, err := uc.users.Register(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", "id", user.ID, "login", user.Login)
	return user, nil
}

func (uc *homeUseCase) Search(ctx context.Context, category, value string) (*SearchResult, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, invalid("value", "must not be empty")
	}

	switch category {
	case SearchPhoto:
		id, ok, err := uc.tags.FindIDByName(ctx, value)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("тег %q: %w", value, domain.ErrNotFound)
		}
		return &SearchResult{Category: category, ID: id}, nil
	case SearchUser:
		user, err := uc.users.FindOneByLogin(ctx, value)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("пользователь %q: %w", value, domain.ErrNotFound)
		}
		return &SearchResult{Category: category, ID: user.ID}, nil
	default:
		return nil, invalid("category", "must be %q or %q", SearchPhoto, SearchUser)
	}
}
