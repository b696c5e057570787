package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/database/paginator"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/jmoiron/sqlx"
)

const (
	userSelect = `SELECT u.id, u.login, u.password, u.mail, u.role_id FROM users u`
	userOrder  = ` ORDER BY u.login, u.id`
)

type UserStorage struct {
	db     *sqlx.DB
	hasher ports.PasswordHasher
	logger *slog.Logger
}

func NewUserStorage(db *sqlx.DB, hasher ports.PasswordHasher, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, hasher: hasher, logger: logger}
}

// FindOneByID получает пользователя по ID, nil если его нет
func (s *UserStorage) FindOneByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.findOne(ctx, ` WHERE u.id = ?`, id)
}

// FindOneByLogin получает пользователя по логину, nil если его нет
func (s *UserStorage) FindOneByLogin(ctx context.Context, login string) (*domain.User, error) {
	return s.findOne(ctx, ` WHERE u.login = ?`, login)
}

// FindForUniqueness ищет другого пользователя с тем же логином.
// excludeID исключает редактируемую запись; 0 значит искать среди всех.
func (s *UserStorage) FindForUniqueness(ctx context.Context, login string, excludeID int64) (*domain.User, error) {
	return s.findOne(ctx, ` WHERE u.login = ? AND u.id <> ?`, login, excludeID)
}

func (s *UserStorage) findOne(ctx context.Context, where string, args ...any) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, s.db, &user, s.db.Rebind(userSelect+where), args...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		s.logger.Error("failed to get user", "args", args, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}
	return &user, nil
}

// FindAll получает всех пользователей
func (s *UserStorage) FindAll(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := sqlx.SelectContext(ctx, s.db, &users, s.db.Rebind(userSelect+userOrder)); err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователей: %w", err)
	}
	return users, nil
}

// FindAllPaginated получает страницу пользователей
func (s *UserStorage) FindAllPaginated(ctx context.Context, page int) (*domain.Page[domain.User], error) {
	result, err := paginator.Paginate[domain.User](ctx, s.db, paginator.Query{
		Select: userSelect + userOrder,
		Count:  `SELECT COUNT(*) FROM users u`,
	}, page, domain.UserPageSize)
	if err != nil {
		s.logger.Error("failed to paginate users", "page", page, "error", err)
		return nil, fmt.Errorf("ошибка при получении страницы пользователей: %w", err)
	}
	return result, nil
}

// Create хеширует пароль и сохраняет пользователя с ролью ROLE_USER,
// если роль не задана явно.
func (s *UserStorage) Create(ctx context.Context, user *domain.User) (int64, error) {
	start := time.Now()

	id, err := s.insertUser(ctx, s.db, user)
	if err != nil {
		return 0, err
	}

	s.logger.Info("user created",
		"id", id,
		"login", user.Login,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return id, nil
}

// Register создает пользователя вместе с пустой записью userdata в одной транзакции.
func (s *UserStorage) Register(ctx context.Context, user *domain.User) (int64, error) {
	start := time.Now()

	var id int64
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		if id, err = s.insertUser(ctx, tx, user); err != nil {
			return err
		}
		_, err = s.createEmptyUserdata(ctx, tx, id)
		return err
	})
	if err != nil {
		user.ID = 0
		return 0, err
	}

	s.logger.Info("user registered",
		"id", id,
		"login", user.Login,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return id, nil
}

// insertUser вставляет строку users через db или открытую транзакцию
func (s *UserStorage) insertUser(ctx context.Context, db sqlx.ExtContext, user *domain.User) (int64, error) {
	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return 0, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	roleID := user.RoleID
	if roleID == 0 {
		roleID = domain.RoleUserID
	}

	id, err := insertReturningID(ctx, db,
		`INSERT INTO users (login, password, mail, role_id) VALUES (?, ?, ?, ?) RETURNING id`,
		user.Login, hash, user.Mail, roleID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrConflict
		}
		s.logger.Error("failed to create user", "login", user.Login, "error", err)
		return 0, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	user.ID = id
	user.Password = hash
	user.RoleID = roleID
	return id, nil
}

// Update меняет почту и пароль (пустой пароль оставляет прежний).
// Логин после создания не меняется.
func (s *UserStorage) Update(ctx context.Context, user *domain.User) (int64, error) {
	if !validID(user.ID) {
		return 0, domain.ErrInvalidArgument
	}

	var (
		n   int64
		err error
	)
	if user.Password == "" {
		n, err = exec(ctx, s.db, `UPDATE users SET mail = ? WHERE id = ?`, user.Mail, user.ID)
	} else {
		hash, hashErr := s.hasher.Hash(user.Password)
		if hashErr != nil {
			return 0, fmt.Errorf("ошибка хеширования пароля: %w", hashErr)
		}
		n, err = exec(ctx, s.db, `UPDATE users SET mail = ?, password = ? WHERE id = ?`, user.Mail, hash, user.ID)
		user.Password = hash
	}
	if err != nil {
		s.logger.Error("failed to update user", "id", user.ID, "error", err)
		return 0, fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	s.logger.Info("user updated", "id", user.ID, "rows", n)
	return n, nil
}

// Save создает или обновляет пользователя в зависимости от варианта m.
func (s *UserStorage) Save(ctx context.Context, m domain.Mutation[domain.User]) (domain.SaveResult, error) {
	user := m.Record
	if id, ok := m.ID(); ok {
		user.ID = id
		n, err := s.Update(ctx, &user)
		return domain.SaveResult{ID: id, RowsAffected: n}, err
	}
	id, err := s.Create(ctx, &user)
	if err != nil {
		return domain.SaveResult{}, err
	}
	return domain.SaveResult{ID: id, RowsAffected: 1, Created: true}, nil
}

// createEmptyUserdata создает пустую запись userdata для нового пользователя
func (s *UserStorage) createEmptyUserdata(ctx context.Context, db sqlx.ExtContext, userID int64) (int64, error) {
	if !validID(userID) {
		return 0, domain.ErrInvalidArgument
	}
	id, err := insertReturningID(ctx, db,
		`INSERT INTO userdata (user_id, name, surname) VALUES (?, '', '') RETURNING id`, userID)
	if err != nil {
		s.logger.Error("failed to create userdata", "user_id", userID, "error", err)
		return 0, fmt.Errorf("ошибка при создании userdata: %w", err)
	}
	return id, nil
}

// GetUserRoles получает имена ролей пользователя
func (s *UserStorage) GetUserRoles(ctx context.Context, userID int64) ([]string, error) {
	roles := []string{}
	q := s.db.Rebind(`SELECT r.name FROM roles r INNER JOIN users u ON u.role_id = r.id WHERE u.id = ?`)
	if err := sqlx.SelectContext(ctx, s.db, &roles, q, userID); err != nil {
		s.logger.Error("failed to get user roles", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении ролей пользователя: %w", err)
	}
	return roles, nil
}

// LoadUserByLogin возвращает данные для проверки входа.
// Если пользователя или его ролей нет, возвращает domain.ErrNotFound.
func (s *UserStorage) LoadUserByLogin(ctx context.Context, login string) (*domain.Credentials, error) {
	user, err := s.FindOneByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	roles, err := s.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, domain.ErrNotFound
	}

	return &domain.Credentials{
		ID:       user.ID,
		Login:    user.Login,
		Password: user.Password,
		Roles:    roles,
	}, nil
}

// Delete удаляет пользователя и все, что от него зависит, в одной транзакции.
// Возвращает удаленные фото, чтобы можно было очистить файлы.
func (s *UserStorage) Delete(ctx context.Context, id int64) (domain.RemovedPhotos, error) {
	if !validID(id) {
		return domain.RemovedPhotos{}, domain.ErrInvalidArgument
	}
	start := time.Now()

	var removed domain.RemovedPhotos
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		removed, err = deleteUserCascade(ctx, tx, id)
		return err
	})
	if err != nil {
		s.logger.Error("failed to delete user", "id", id, "error", err)
		return domain.RemovedPhotos{}, err
	}

	s.logger.Info("user deleted",
		"id", id,
		"photos", len(removed.PhotoIDs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return removed, nil
}
