// apierrors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку доменного слоя (service),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Маппинг следует контракту сервиса: неверные учётные данные и любые
// проблемы токенов — 401; неактивная запись и конфликт email — 400;
// нехватка привилегий — 403; отсутствующая запись — 404.
package apierrors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/account-service/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// ErrMissingToken — в запросе нет bearer-токена, а маршрут его требует.
var ErrMissingToken = errors.New("missing bearer token")

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку доменного слоя в HTTP-статус
// и унифицированный ответ.
//
// err == nil — программная ошибка вызова: возвращаем 500/internal,
// чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := base(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func base(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"

	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"

	case errors.Is(err, service.ErrInactiveUser):
		return http.StatusBadRequest, "inactive_user", "inactive user"

	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusBadRequest, "already_exists", "the user with this email already exists in the system"

	case errors.Is(err, ErrMissingToken),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBadPassword),
		errors.Is(err, service.ErrMalformedToken),
		errors.Is(err, service.ErrInvalidSignature),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrMissingSubject):
		return http.StatusUnauthorized, "unauthenticated", "could not validate credentials"

	case errors.Is(err, service.ErrNoPrivileges):
		return http.StatusForbidden, "no_privileges", "the user has no privileges to perform this action"

	case errors.Is(err, service.ErrUserDoesNotExist):
		return http.StatusNotFound, "user_not_found", "the user does not exist in the system"

	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"

	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
