// transport/http собирает HTTP-роутер account-сервиса: REST-эндпоинты,
// служебные маршруты (/livez, /healthz, /metrics) и цепочку мидлваров.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/account-service/internal/service"
	"github.com/pribylovaa/account-service/internal/transport/http/handlers"
	"github.com/pribylovaa/account-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger         *slog.Logger
	Timeout        time.Duration
	AllowedOrigins []string
	// Ready — признак готовности сервиса для /healthz; nil означает "всегда готов".
	Ready func() bool
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if len(opts.AllowedOrigins) > 0 {
		root.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
		}))
	}
	root.Use(middleware.Metrics())
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	// auth
	root.Post("/auth/token", h.Login)
	root.Post("/auth/refresh", h.Refresh)

	// users
	root.Get("/users", h.ListUsers)
	root.Post("/users", h.CreateUser)
	root.Get("/users/me", h.Me)
	root.Put("/users/me", h.UpdateMe)
	root.Get("/users/{id}", h.UserByID)
	root.Put("/users/{id}", h.UpdateUser)

	// служебные маршруты.
	root.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	root.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready == nil || opts.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	root.Handle("/metrics", promhttp.Handler())

	return root
}
