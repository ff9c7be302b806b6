package handlers

import (
	"net/http"

	"github.com/pribylovaa/account-service/internal/service"
	"github.com/pribylovaa/account-service/internal/transport/http/apierrors"
)

// Login аутентифицирует пользователя по email+паролю и возвращает пару токенов.
// Маппинг ошибок:
//   - ErrUserNotFound/ErrBadPassword -> 401;
//   - ErrInactiveUser -> 400;
//   - прочее -> 500.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse(pair))
}

// Refresh перевыпускает access-токен по валидному refresh-токену.
// Refresh-токен возвращается в паре без изменений (ротации нет).
// Маппинг ошибок:
//   - ошибки токена (подпись/срок/структура/subject) и отсутствие
//     учётной записи -> 401;
//   - ErrInactiveUser -> 400;
//   - прочее -> 500.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, err := h.svc.RefreshSession(r.Context(), in.Email, in.RefreshToken)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse(pair))
}
