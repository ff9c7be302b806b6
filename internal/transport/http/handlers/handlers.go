// handlers содержит HTTP-эндпоинты account-сервиса.
// Здесь выполняется только разбор запросов и маппинг данных/ошибок
// доменного слоя (service) в HTTP; вся бизнес-логика — в пакете service.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/service"
	"github.com/pribylovaa/account-service/internal/transport/http/apierrors"
)

// Handlers агрегирует зависимости эндпоинтов.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// bearerToken извлекает Bearer-токен из заголовка Authorization.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}

	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", false
	}

	return token, true
}

// currentUser устанавливает вызывающего по access-токену из Authorization.
// Ошибка уже записана в ответ — вызывающий хендлер просто выходит.
func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	token, ok := bearerToken(r)
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrMissingToken)
		return nil, false
	}

	user, err := h.svc.CurrentUser(r.Context(), token)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return nil, false
	}

	return user, true
}
