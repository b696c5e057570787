package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
)

type profileUseCase struct {
	profiles  ports.ProfileStorage
	users     ports.UserStorage
	userdata  ports.UserdataStorage
	photos    ports.PhotoStorage
	publisher ports.PhotoCleanupPublisher
	logger    *slog.Logger
}

// NewProfileUseCase создает новый экземпляр ProfileUseCase
func NewProfileUseCase(
	profiles ports.ProfileStorage,
	users ports.UserStorage,
	userdata ports.UserdataStorage,
	photos ports.PhotoStorage,
	publisher ports.PhotoCleanupPublisher,
	logger *slog.Logger,
) ProfileUseCase {
	return &profileUseCase{
		profiles:  profiles,
		users:     users,
		userdata:  userdata,
		photos:    photos,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *profileUseCase) List(ctx context.Context, page int) (*domain.Page[domain.Profile], error) {
	return uc.profiles.FindAllPaginated(ctx, page)
}

func (uc *profileUseCase) View(ctx context.Context, id int64, page int) (*ProfileView, error) {
	profile, err := uc.profiles.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("профиль %d: %w", id, domain.ErrNotFound)
	}

	photos, err := uc.photos.FindAllByUserPaginated(ctx, id, page)
	if err != nil {
		return nil, err
	}
	return &ProfileView{Profile: *profile, Photos: photos}, nil
}

func (uc *profileUseCase) EditUser(ctx context.Context, viewer domain.Viewer, id int64, in EditUserInput) error {
	user, err := uc.findUser(ctx, viewer, id)
	if err != nil {
		return err
	}

	mail := strings.TrimSpace(in.Mail)
	if err := checkMail(mail); err != nil {
		return err
	}
	if in.Password != "" {
		if err := checkLength("password", in.Password, MinPasswordLen, MaxPasswordLen); err != nil {
			return err
		}
	}

	user.Mail = mail
	user.Password = in.Password
	_, err = uc.users.Update(ctx, user)
	return err
}

func (uc *profileUseCase) EditUserdata(ctx context.Context, viewer domain.Viewer, id int64, in EditUserdataInput) error {
	if _, err := uc.findUser(ctx, viewer, id); err != nil {
		return err
	}

	name, surname := cleanText(in.Name), cleanText(in.Surname)
	if err := checkLength("name", name, 0, MaxNameLen); err != nil {
		return err
	}
	if err := checkLength("surname", surname, 0, MaxNameLen); err != nil {
		return err
	}

	_, err := uc.userdata.Update(ctx, &domain.Userdata{UserID: id, Name: name, Surname: surname})
	return err
}

func (uc *profileUseCase) Delete(ctx context.Context, viewer domain.Viewer, id int64) error {
	if _, err := uc.findUser(ctx, viewer, id); err != nil {
		return err
	}

	removed, err := uc.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	uc.logger.Info("profile deleted", "id", id, "by", viewer.UserID, "photos", len(removed.PhotoIDs))
	enqueueCleanup(ctx, uc.publisher, uc.logger, removed)
	return nil
}

// findUser возвращает пользователя id, если viewer может им управлять
func (uc *profileUseCase) findUser(ctx context.Context, viewer domain.Viewer, id int64) (*domain.User, error) {
	if !viewer.IsLogged() {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.users.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("пользователь %d: %w", id, domain.ErrNotFound)
	}
	if err := authorize(viewer, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}
