// service содержит бизнес-логику account-сервиса:
// проверку учётных данных, выпуск/валидацию токенов, правила доступа
// к учётным записям и операции над ними через интерфейсы пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Ошибки возвращаются и далее маппятся
//     транспортом на HTTP-статусы (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"
	"time"

	"github.com/pribylovaa/account-service/internal/config"
	"github.com/pribylovaa/account-service/internal/storage"
)

var (
	// ErrInvalidArgument — некорректные входные данные (формат email,
	// пустой пароль при создании и т.п.). Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUserNotFound — учётная запись для указанного email/id не найдена
	// на пути аутентификации. Транспорт: HTTP 401.
	ErrUserNotFound = errors.New("user not found")

	// ErrBadPassword — пароль не совпал с хэшем. Транспорт: HTTP 401.
	ErrBadPassword = errors.New("bad password")

	// ErrMalformedToken — токен не разбирается структурно. Транспорт: HTTP 401.
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature — подпись токена не проходит проверку секретом
	// соответствующего типа (в т.ч. access-токен, подписанный refresh-секретом,
	// и наоборот). Транспорт: HTTP 401.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrMissingSubject — в токене отсутствует subject. Транспорт: HTTP 401.
	ErrMissingSubject = errors.New("missing token subject")

	// ErrInactiveUser — учётная запись деактивирована. Транспорт: HTTP 400.
	ErrInactiveUser = errors.New("inactive user")

	// ErrUserAlreadyExists — e-mail уже занят другим пользователем.
	// Транспорт: HTTP 400.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserDoesNotExist — запрошенная учётная запись отсутствует
	// (пути чтения/изменения чужих записей). Транспорт: HTTP 404.
	ErrUserDoesNotExist = errors.New("user does not exist")

	// ErrNoPrivileges — у вызывающего нет прав на операцию над чужой
	// учётной записью. Транспорт: HTTP 403.
	ErrNoPrivileges = errors.New("no privileges")
)

// Service описывает бизнес-логику account-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig

	// now — источник времени для выпуска/проверки токенов;
	// подменяется в тестах.
	now func() time.Time
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}
