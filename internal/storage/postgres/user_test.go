package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/storage"
)

// startPostgres поднимает контейнер PostgreSQL и возвращает готовое
// хранилище с применёнными миграциями.
// Интеграционные тесты выполняются только при GO_TEST_INTEGRATION=1.
func startPostgres(t *testing.T) *Storage {
	t.Helper()

	if os.Getenv("GO_TEST_INTEGRATION") != "1" {
		t.Skip("skipping integration test; set GO_TEST_INTEGRATION=1 to run")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("accounts"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	st, err := New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	return st
}

func newStoredUser(email string) *models.User {
	now := time.Now().UTC().Truncate(time.Microsecond)

	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     "Stored User",
		PasswordHash: "$2a$10$examplehashexamplehashexamplehashexam",
		IsActive:     true,
		IsSuperuser:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestStorage_SaveAndFindUser(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	user := newStoredUser("save@example.com")
	require.NoError(t, st.SaveUser(ctx, user))

	byEmail, err := st.UserByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)
	require.Equal(t, user.Email, byEmail.Email)
	require.Equal(t, user.FullName, byEmail.FullName)
	require.Equal(t, user.PasswordHash, byEmail.PasswordHash)
	require.True(t, byEmail.IsActive)
	require.False(t, byEmail.IsSuperuser)

	byID, err := st.UserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, byID.Email)
}

func TestStorage_SaveUser_DuplicateEmail(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	user := newStoredUser("dup@example.com")
	require.NoError(t, st.SaveUser(ctx, user))

	clone := newStoredUser("dup@example.com")
	err := st.SaveUser(ctx, clone)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestStorage_FindUser_NotFound(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	_, err := st.UserByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.UserByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_ListUsers_Pagination(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	emails := []string{"list-a@example.com", "list-b@example.com", "list-c@example.com"}
	for i, email := range emails {
		user := newStoredUser(email)
		// Разнесём created_at, чтобы порядок был детерминирован.
		user.CreatedAt = user.CreatedAt.Add(time.Duration(i) * time.Second)
		require.NoError(t, st.SaveUser(ctx, user))
	}

	page, err := st.ListUsers(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, emails[0], page[0].Email)
	require.Equal(t, emails[1], page[1].Email)

	page, err = st.ListUsers(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, emails[2], page[0].Email)
}

func TestStorage_UpdateUser_Partial(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	user := newStoredUser("update@example.com")
	require.NoError(t, st.SaveUser(ctx, user))

	newName := "Renamed User"
	inactive := false

	updated, err := st.UpdateUser(ctx, user.ID, storage.UserUpdate{
		FullName: &newName,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	require.Equal(t, newName, updated.FullName)
	require.False(t, updated.IsActive)
	// Непереданные поля сохранены.
	require.Equal(t, user.Email, updated.Email)
	require.Equal(t, user.PasswordHash, updated.PasswordHash)
	// updated_at сдвинут вперёд.
	require.True(t, updated.UpdatedAt.After(user.UpdatedAt) || updated.UpdatedAt.Equal(user.UpdatedAt))
}

func TestStorage_UpdateUser_NotFound(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	name := "X"
	_, err := st.UpdateUser(ctx, uuid.New(), storage.UserUpdate{FullName: &name})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_UpdateUser_EmailConflict(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	first := newStoredUser("conflict-a@example.com")
	second := newStoredUser("conflict-b@example.com")
	require.NoError(t, st.SaveUser(ctx, first))
	require.NoError(t, st.SaveUser(ctx, second))

	taken := first.Email
	_, err := st.UpdateUser(ctx, second.ID, storage.UserUpdate{Email: &taken})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}
