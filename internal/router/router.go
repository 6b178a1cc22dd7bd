package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"admedia-backoffice/internal/config"
	"admedia-backoffice/internal/handler"
	"admedia-backoffice/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Avatar   *handler.AvatarHandler
	Expense  *handler.ExpenseHandler
	Order    *handler.OrderHandler
	Client   *handler.PartyHandler
	Provider *handler.PartyHandler
	Audit    *handler.AuditHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(authMiddleware.RequireAuth)

			users.Get("/", h.User.List)
			users.With(authMiddleware.RequireAdmin).Post("/", h.User.Create)
			users.With(authMiddleware.RequireAdmin).Get("/{id}", h.User.Get)
			users.With(authMiddleware.RequireAdmin).Put("/{id}", h.User.Update)
			users.With(authMiddleware.RequireAdmin).Post("/{id}/reset-password", h.User.ResetPassword)

			users.Post("/{id}/avatar", h.Avatar.Upload)
			users.Get("/{id}/avatar", h.Avatar.Get)
		})

		api.Route("/expenses", func(expenses chi.Router) {
			expenses.Use(authMiddleware.RequireAuth)

			expenses.Get("/", h.Expense.List)
			expenses.Post("/", h.Expense.Create)
			expenses.Get("/{id}", h.Expense.Get)
			expenses.Put("/{id}", h.Expense.Update)
			expenses.With(authMiddleware.RequireAdmin).Delete("/{id}", h.Expense.Delete)
		})

		api.Route("/orders", func(orders chi.Router) {
			orders.Use(authMiddleware.RequireAuth)

			orders.Get("/", h.Order.List)
			orders.Post("/", h.Order.Create)
			orders.Get("/{id}", h.Order.Get)
			orders.Put("/{id}", h.Order.Update)
			orders.With(authMiddleware.RequireAdmin).Delete("/{id}", h.Order.Delete)
		})

		api.Route("/clients", func(clients chi.Router) {
			clients.Use(authMiddleware.RequireAuth)

			clients.Get("/", h.Client.List)
			clients.Get("/{id}", h.Client.Get)
			clients.With(authMiddleware.RequireAdmin).Post("/", h.Client.Create)
			clients.With(authMiddleware.RequireAdmin).Put("/{id}", h.Client.Update)
		})

		api.Route("/providers", func(providers chi.Router) {
			providers.Use(authMiddleware.RequireAuth)

			providers.Get("/", h.Provider.List)
			providers.Get("/{id}", h.Provider.Get)
			providers.With(authMiddleware.RequireAdmin).Post("/", h.Provider.Create)
			providers.With(authMiddleware.RequireAdmin).Put("/{id}", h.Provider.Update)
		})

		api.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin).Get("/audit", h.Audit.List)
	})

	return r
}
