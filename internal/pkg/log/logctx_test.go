package log

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Тесты меняют slog.Default(), поэтому намеренно без t.Parallel().

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Без логгера в контексте From возвращает текущий slog.Default().
func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

// Into/From — round-trip 1:1; соседние контексты не затрагиваются.
func TestIntoAndFrom_RoundTrip(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
	require.Equal(t, def, From(context.Background()))
}

// From устойчив к значению чужого типа под нашим ключом и к *slog.Logger(nil).
func TestFrom_ReturnsDefault_WhenStoredValueIsWrongTypeOrNil(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

// Хендлеры сервиса уточняют request-scoped логгер атрибутами (op, email):
// дочерний контекст перекрывает логгер запроса, не трогая родительский.
func TestInto_ShadowRequestLogger(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	requestL := newSilent().With(slog.String("request_id", "req-1"))
	opL := requestL.With(slog.String("op", "service.auth.Login"))

	reqCtx := Into(context.Background(), requestL)
	opCtx := Into(reqCtx, opL)

	require.Equal(t, opL, From(opCtx))
	require.Equal(t, requestL, From(reqCtx))
}

// Into не трогает прочие значения context.Value.
func TestInto_PreservesContextValues(t *testing.T) {
	type vk struct{}
	key := vk{}

	base := context.WithValue(context.Background(), key, "v")
	l := newSilent()

	ctx := Into(base, l)

	require.Equal(t, l, From(ctx))
	require.Equal(t, "v", ctx.Value(key))
}

// Into не меняет отмену и дедлайн: таймаут запроса доходит до хендлера
// вместе с логгером.
func TestInto_PreservesCancellationAndDeadline(t *testing.T) {
	parentDL, cancelDL := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancelDL()

	l := newSilent()
	child := Into(parentDL, l)

	cdl, ok := child.Deadline()
	require.True(t, ok)
	pdl, _ := parentDL.Deadline()
	require.WithinDuration(t, pdl, cdl, time.Millisecond)

	select {
	case <-child.Done():
		require.ErrorIs(t, child.Err(), context.DeadlineExceeded)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected deadline on child context")
	}

	parentCancel, cancel := context.WithCancel(context.Background())
	child2 := Into(parentCancel, l)
	cancel()
	select {
	case <-child2.Done():
		require.ErrorIs(t, child2.Err(), context.Canceled)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected cancellation on child context")
	}
}
