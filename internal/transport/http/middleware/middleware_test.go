package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// capHandler — slog.Handler, накапливающий записи для проверок.
type capHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *capHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *capHandler) WithGroup(string) slog.Handler      { return h }

func (h *capHandler) last(t *testing.T) slog.Record {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	require.NotEmpty(t, h.records)
	return h.records[len(h.records)-1]
}

func TestChain_Order(t *testing.T) {
	var got []string

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = append(got, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		got = append(got, "handler")
		w.WriteHeader(http.StatusNoContent)
	}), mw("outer"), mw("inner"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner", "handler"}, got)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var ctxID string

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID, _ = r.Context().Value(CtxRequestID).(string)
		w.WriteHeader(http.StatusOK)
	}), RequestID())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get("X-Request-Id")
	require.Len(t, id, 32)
	require.Equal(t, id, ctxID)
}

func TestRequestID_PassesThroughExisting(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), RequestID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-supplied")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "client-supplied", rec.Header().Get("X-Request-Id"))
}

func TestLogging_OneRecordPerRequest(t *testing.T) {
	capture := &capHandler{}
	logger := slog.New(capture)

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	}), Logging(logger))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", nil))

	record := capture.last(t)
	require.Equal(t, slog.LevelInfo, record.Level)
	require.Equal(t, "http", record.Message)

	attrs := map[string]slog.Value{}
	record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value
		return true
	})
	require.Equal(t, "POST", attrs["method"].String())
	require.Equal(t, "/users", attrs["path"].String())
	require.Equal(t, int64(http.StatusCreated), attrs["status"].Int64())
	require.Equal(t, int64(4), attrs["bytes"].Int64())
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), Recover())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "internal", resp.Error.Code)
	// Причина паники на клиент не утекает.
	require.NotContains(t, rec.Body.String(), "boom")
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var hasDeadline bool

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	}), Timeout(time.Second))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, hasDeadline)
}

func TestTimeout_RespectsExistingDeadline(t *testing.T) {
	want := time.Now().Add(10 * time.Second)

	var got time.Time
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	}), Timeout(time.Second))

	ctx, cancel := context.WithDeadline(context.Background(), want)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, want, got)
}

func TestTimeout_ZeroIsNoop(t *testing.T) {
	var hasDeadline bool

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	}), Timeout(0))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.False(t, hasDeadline)
}

func TestStatusWriter_DefaultsTo200OnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStatusWriter(rec)

	_, err := sw.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, sw.status)
	require.Equal(t, 5, sw.count)
}
