package models

import (
	"time"

	"github.com/google/uuid"
)

// User - учётная запись пользователя в системе.
//
// PasswordHash хранит только bcrypt-хэш; открытый пароль никогда
// не сохраняется и не логируется.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
