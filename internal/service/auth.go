package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/pkg/log"
	"github.com/pribylovaa/account-service/internal/pkg/redact"
	"github.com/pribylovaa/account-service/internal/storage"
)

// Authenticate проверяет пару email+пароль против хранимой учётной записи.
//
// Поведение:
//   - email отсутствует в хранилище -> ErrUserNotFound;
//   - пароль не совпал -> ErrBadPassword;
//   - иначе возвращается учётная запись.
//
// Признак is_active здесь намеренно НЕ проверяется: проверка остаётся
// за вызывающим, чтобы один и тот же примитив служил и логину,
// и перевыпуску access-токена.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	const op = "service.auth.Authenticate"

	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	normEmail, err := validateEmail(email)
	if err != nil {
		lg.Warn("invalid email format")

		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("user not found")

			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		lg.Error("storage error on UserByEmail", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Warn("password mismatch")

		return nil, fmt.Errorf("%s: %w", op, ErrBadPassword)
	}

	return user, nil
}

// Login аутентифицирует пользователя и выпускает пару токенов.
// Неактивная учётная запись отклоняется с ErrInactiveUser.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	const op = "service.auth.Login"

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !user.IsActive {
		log.From(ctx).Warn("inactive user login rejected", "op", op, "user_id", user.ID.String())

		return nil, fmt.Errorf("%s: %w", op, ErrInactiveUser)
	}

	pair, err := s.IssueSession(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// IssueSession выпускает пару access+refresh токенов для учётной записи.
// Вызывающий обязан предварительно убедиться, что user.IsActive.
//
// Subject access-токена — id пользователя, subject refresh-токена — email:
// короткоживущий токен не дублирует PII, долгоживущий позволяет
// перечитать актуальное состояние записи по email при обновлении.
func (s *Service) IssueSession(user *models.User) (*models.TokenPair, error) {
	const op = "service.auth.IssueSession"

	now := s.now()

	accessToken, err := s.encodeToken(user.ID.String(), tokenKindAccess, s.cfg.AccessSecret, s.cfg.AccessTokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.encodeToken(user.Email, tokenKindRefresh, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		TokenType:       models.TokenTypeBearer,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// RefreshSession перевыпускает access-токен по валидному refresh-токену.
//
// Поведение:
//   - refresh-токен декодируется refresh-секретом (ошибки по таксономии
//     decodeToken); subject токена обязан совпадать с заявленным email;
//   - учётная запись перечитывается из хранилища по email
//     (ErrUserNotFound при отсутствии);
//   - is_active перепроверяется (ErrInactiveUser);
//   - выпускается ТОЛЬКО новый access-токен; refresh-токен возвращается
//     без изменений — ротация не выполняется, повтор валидного
//     refresh-токена всегда даёт свежий access-токен, привязанный
//     к текущему состоянию записи.
func (s *Service) RefreshSession(ctx context.Context, email, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.RefreshSession"

	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	subject, err := s.decodeToken(refreshToken, tokenKindRefresh, s.cfg.RefreshSecret)
	if err != nil {
		lg.Warn("refresh token rejected", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	normEmail, err := validateEmail(email)
	if err != nil {
		lg.Warn("invalid email format")

		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	if subject != normEmail {
		lg.Warn("refresh subject mismatch")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("user not found")

			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		lg.Error("storage error on UserByEmail", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !user.IsActive {
		lg.Warn("inactive user refresh rejected", "user_id", user.ID.String())

		return nil, fmt.Errorf("%s: %w", op, ErrInactiveUser)
	}

	now := s.now()

	accessToken, err := s.encodeToken(user.ID.String(), tokenKindAccess, s.cfg.AccessSecret, s.cfg.AccessTokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		TokenType:       models.TokenTypeBearer,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// CurrentUser валидирует access-токен и возвращает учётную запись вызывающего.
//
// Поведение:
//   - токен декодируется access-секретом (таксономия decodeToken);
//   - subject разбирается как UUID (иначе ErrMalformedToken);
//   - запись перечитывается из хранилища (ErrUserNotFound);
//   - неактивная запись отклоняется (ErrInactiveUser).
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	const op = "service.auth.CurrentUser"

	lg := log.From(ctx).With("op", op)

	subject, err := s.decodeToken(accessToken, tokenKindAccess, s.cfg.AccessSecret)
	if err != nil {
		lg.Warn("access token rejected", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	uid, err := uuid.Parse(subject)
	if err != nil {
		lg.Warn("access subject is not a uuid")

		return nil, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	user, err := s.storage.UserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("user not found", "user_id", uid.String())

			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		lg.Error("storage error on UserByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !user.IsActive {
		lg.Warn("inactive user rejected", "user_id", user.ID.String())

		return nil, fmt.Errorf("%s: %w", op, ErrInactiveUser)
	}

	return user, nil
}

// validateEmail проверяет формат email и нормализует его.
// Возвращается именно разобранный адрес (addr-spec) в нижнем регистре:
// формы с display name вида "John <john@x.com>" сводятся к john@x.com,
// иначе один и тот же ящик регистрировался бы под разными написаниями.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	return strings.ToLower(addr.Address), nil
}
