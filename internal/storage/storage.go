package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
)

// UserUpdate — частичный апдейт учётной записи.
// Параметры задаются pointer-полями: только непустые указатели обновляются в БД.
// PasswordHash к этому моменту уже захэширован сервисным слоем —
// хранилище никогда не видит открытый пароль.
type UserUpdate struct {
	Email        *string
	FullName     *string
	PasswordHash *string
	IsActive     *bool
	IsSuperuser  *bool
}

// UserStorage выполняет операции над учётными записями.
type UserStorage interface {
	// SaveUser создает нового пользователя в БД.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// ListUsers возвращает страницу пользователей (offset/limit).
	ListUsers(ctx context.Context, offset, limit uint64) ([]models.User, error)
	// UpdateUser выполняет частичное обновление полей, указанных в update.
	// Реализация должна обновить updated_at.
	UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*models.User, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	Close()
}
