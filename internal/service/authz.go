package service

import (
	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/models"
)

// Правила доступа к учётным записям. Чистые функции, вычисляются на каждый
// запрос; состояние нигде не сохраняется.

// canView — имеет ли вызывающий право читать запись target.
// Своя запись доступна всегда, чужая — только суперпользователю.
func canView(caller *models.User, targetID uuid.UUID) bool {
	if caller == nil {
		return false
	}

	return caller.ID == targetID || caller.IsSuperuser
}

// canModify — имеет ли вызывающий право изменять запись target.
// Изменение своей записи разрешено всегда, независимо от привилегий;
// чужой — только суперпользователю.
func canModify(caller *models.User, targetID uuid.UUID) bool {
	if caller == nil {
		return false
	}

	return caller.ID == targetID || caller.IsSuperuser
}
