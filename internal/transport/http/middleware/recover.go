package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	logctx "github.com/pribylovaa/account-service/internal/pkg/log"
	"github.com/pribylovaa/account-service/internal/transport/http/apierrors"
)

// Recover перехватывает panic в хендлерах и нижележащих мидлварах,
// конвертирует в 500/internal через конверт apierrors и пишет причину
// в лог. Детали паники на клиент не утекают.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logctx.From(r.Context()).
						LogAttrs(r.Context(), slog.LevelError, "panic",
							slog.String("path", r.URL.Path),
							slog.Any("reason", rec),
						)
					apierrors.WriteError(w, r, fmt.Errorf("internal"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
