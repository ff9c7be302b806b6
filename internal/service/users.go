package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/pkg/log"
	"github.com/pribylovaa/account-service/internal/pkg/redact"
	"github.com/pribylovaa/account-service/internal/storage"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Входные структуры сервисного слоя.
//
// Регистрация принимает только email/пароль/имя: признаки is_active и
// is_superuser клиентом не задаются — новая запись всегда активна и
// не привилегирована. Суперпользователь назначается только существующим
// суперпользователем через UpdateUser.
type CreateUserInput struct {
	Email    string
	Password string
	FullName string
}

// UpdateUserInput — частичное обновление учётной записи.
// Обновляются только поля с непустыми указателями; Password при передаче
// перехэшируется, хранимый хэш при отсутствии поля сохраняется как есть.
type UpdateUserInput struct {
	Email       *string
	Password    *string
	FullName    *string
	IsActive    *bool
	IsSuperuser *bool
}

// CreateUser создаёт новую учётную запись.
//
// Валидация:
//   - email нормализуется и проверяется на формат (ErrInvalidArgument);
//   - пароль не может быть пустым (ErrInvalidArgument).
//
// Поведение:
//   - занятый email -> ErrUserAlreadyExists;
//   - пароль хэшируется до записи — хранилище не видит открытый текст.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	const op = "service.users.CreateUser"

	lg := log.From(ctx).With("op", op, "email", redact.Email(input.Email))

	normEmail, err := validateEmail(input.Email)
	if err != nil {
		lg.Warn("invalid email format")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if input.Password == "" {
		lg.Warn("empty password")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		lg.Warn("email already taken")

		return nil, fmt.Errorf("%s: %w", op, ErrUserAlreadyExists)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		lg.Error("storage error on UserByEmail", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		FullName:     input.FullName,
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsSuperuser:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Warn("email already taken on save")

			return nil, fmt.Errorf("%s: %w", op, ErrUserAlreadyExists)
		}

		lg.Error("storage error on SaveUser", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// ListUsers возвращает страницу учётных записей.
// limit == 0 трактуется как значение по умолчанию; верхняя граница ограничена.
func (s *Service) ListUsers(ctx context.Context, offset, limit uint64) ([]models.User, error) {
	const op = "service.users.ListUsers"

	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	users, err := s.storage.ListUsers(ctx, offset, limit)
	if err != nil {
		log.From(ctx).Error("storage error on ListUsers", "op", op, "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

// UserByID возвращает учётную запись по id с учётом прав вызывающего.
//
// Поведение:
//   - свой id: запись возвращается без обращения к хранилищу —
//     вызывающий уже установлен и сам является записью;
//   - чужой id: сперва проверяется существование (ErrUserDoesNotExist),
//     затем привилегии (ErrNoPrivileges) — отсутствие записи никогда
//     не маскируется ошибкой прав, и наоборот.
func (s *Service) UserByID(ctx context.Context, caller *models.User, id uuid.UUID) (*models.User, error) {
	const op = "service.users.UserByID"

	lg := log.From(ctx).With("op", op, "target_id", id.String())

	if caller == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoPrivileges)
	}

	if caller.ID == id {
		u := *caller
		return &u, nil
	}

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("target user does not exist")

			return nil, fmt.Errorf("%s: %w", op, ErrUserDoesNotExist)
		}

		lg.Error("storage error on UserByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !canView(caller, id) {
		lg.Warn("view denied", "caller_id", caller.ID.String())

		return nil, fmt.Errorf("%s: %w", op, ErrNoPrivileges)
	}

	return user, nil
}

// UpdateUser выполняет частичное обновление учётной записи target
// с учётом прав вызывающего.
//
// Поведение:
//   - своя запись: обновление разрешено всегда, независимо от привилегий,
//     и путь не требует проверки существования;
//   - чужая запись: существование проверяется до привилегий
//     (ErrUserDoesNotExist, затем ErrNoPrivileges);
//   - признаки is_active/is_superuser изменяет только суперпользователь —
//     в том числе на собственной записи (ErrNoPrivileges); иначе любой
//     вызывающий назначил бы себе привилегии через self-путь;
//   - Password при передаче перехэшируется; прочие поля с nil-указателями
//     сохраняют хранимые значения;
//   - конфликт уникальности email -> ErrUserAlreadyExists.
func (s *Service) UpdateUser(ctx context.Context, caller *models.User, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	const op = "service.users.UpdateUser"

	lg := log.From(ctx).With("op", op, "target_id", id.String())

	if caller == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoPrivileges)
	}

	if caller.ID != id {
		_, err := s.storage.UserByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				lg.Warn("target user does not exist")

				return nil, fmt.Errorf("%s: %w", op, ErrUserDoesNotExist)
			}

			lg.Error("storage error on UserByID", "err", err)

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if !canModify(caller, id) {
			lg.Warn("modify denied", "caller_id", caller.ID.String())

			return nil, fmt.Errorf("%s: %w", op, ErrNoPrivileges)
		}
	}

	// Гейт существен для self-пути: чужую запись непривилегированный
	// вызывающий уже не прошёл бы через canModify выше.
	if (input.IsActive != nil || input.IsSuperuser != nil) && !caller.IsSuperuser {
		lg.Warn("privilege flags change denied", "caller_id", caller.ID.String())

		return nil, fmt.Errorf("%s: %w", op, ErrNoPrivileges)
	}

	upd := storage.UserUpdate{
		FullName:    input.FullName,
		IsActive:    input.IsActive,
		IsSuperuser: input.IsSuperuser,
	}

	if input.Email != nil {
		normEmail, err := validateEmail(*input.Email)
		if err != nil {
			lg.Warn("invalid email format in update")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		upd.Email = &normEmail
	}

	if input.Password != nil {
		if *input.Password == "" {
			lg.Warn("empty password in update")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		hashed, err := s.hashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		upd.PasswordHash = &hashed
	}

	user, err := s.storage.UpdateUser(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("target user does not exist on update")

			return nil, fmt.Errorf("%s: %w", op, ErrUserDoesNotExist)
		case errors.Is(err, storage.ErrAlreadyExists):
			lg.Warn("email conflict on update")

			return nil, fmt.Errorf("%s: %w", op, ErrUserAlreadyExists)
		default:
			lg.Error("storage error on UpdateUser", "err", err)

			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return user, nil
}
