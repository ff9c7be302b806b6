package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/service"
	"github.com/pribylovaa/account-service/internal/transport/http/apierrors"
)

// ListUsers возвращает страницу учётных записей (query: offset, limit).
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	offset, ok := parseUintQuery(r, "offset")
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	limit, ok := parseUintQuery(r, "limit")
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	users, err := h.svc.ListUsers(r.Context(), offset, limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, userFromModel(&users[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// CreateUser создаёт новую учётную запись.
// Занятый email -> 400.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in createUserRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, err := h.svc.CreateUser(r.Context(), in.toInput())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}

// Me возвращает учётную запись вызывающего.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(caller))
}

// UpdateMe обновляет учётную запись вызывающего (self-путь, привилегии
// не требуются).
func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var in updateUserRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), caller, caller.ID, in.toInput())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}

// UserByID возвращает учётную запись по id.
// Чужая запись: отсутствие -> 404 (независимо от привилегий),
// нехватка прав при существующей записи -> 403.
func (h *Handlers) UserByID(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, err := h.svc.UserByID(r.Context(), caller, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}

// UpdateUser обновляет учётную запись по id (правила доступа — в service).
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	var in updateUserRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), caller, id, in.toInput())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}

// parseUintQuery разбирает неотрицательный числовой query-параметр;
// отсутствующий параметр трактуется как 0.
func parseUintQuery(r *http.Request, name string) (uint64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
