package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/storage"
)

const userColumns = "id, email, full_name, password_hash, is_active, is_superuser, created_at, updated_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// SaveUser создает нового пользователя в БД.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users(id, email, full_name, password_hash, is_active, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.IsActive,
		user.IsSuperuser,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByEmail находит пользователя по email.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.UserByEmail"

	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(s.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.postgres.UserByID"

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// ListUsers возвращает страницу пользователей, упорядоченных по created_at.
func (s *Storage) ListUsers(ctx context.Context, offset, limit uint64) ([]models.User, error) {
	const op = "storage.postgres.ListUsers"

	query := fmt.Sprintf(`
		SELECT %s FROM users
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2
	`, userColumns)

	rows, err := s.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

// UpdateUser выполняет частичный апдейт: обновляет только поля,
// указанные непустыми pointer-полями, и всегда сдвигает updated_at = now().
// Ошибки: storage.ErrNotFound при отсутствии записи,
// storage.ErrAlreadyExists при конфликте уникальности email.
func (s *Storage) UpdateUser(ctx context.Context, id uuid.UUID, update storage.UserUpdate) (*models.User, error) {
	const op = "storage.postgres.UpdateUser"

	sets := []string{"updated_at = now()"}
	args := make([]any, 0, 6)
	count := 0

	add := func(column string, value any) {
		count++
		sets = append(sets, fmt.Sprintf("%s = $%d", column, count))
		args = append(args, value)
	}

	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.FullName != nil {
		add("full_name", *update.FullName)
	}
	if update.PasswordHash != nil {
		add("password_hash", *update.PasswordHash)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}
	if update.IsSuperuser != nil {
		add("is_superuser", *update.IsSuperuser)
	}

	count++
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), count, userColumns)

	user, err := scanUser(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
