package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskman-io/taskman/internal/account"
	"github.com/taskman-io/taskman/internal/api/handler"
	"github.com/taskman-io/taskman/internal/api/middleware"
	"github.com/taskman-io/taskman/internal/auth"
	"github.com/taskman-io/taskman/internal/team"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AccountService *account.Service
	TeamService    *team.Service
	Issuer         *auth.Issuer
	DBPinger       handler.DBPinger
	Version        string
}

// NewRouter creates and configures a Chi router with all middleware and
// routes. Reads on teams are public; mutations and member endpoints
// require a bearer token.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	accountHandler := handler.NewAccountHandler(deps.AccountService)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", accountHandler.Register)
		r.Post("/login", accountHandler.Login)
		r.Post("/logout", accountHandler.Logout)
	})

	teamHandler := handler.NewTeamHandler(deps.TeamService)
	memberHandler := handler.NewMemberHandler(deps.TeamService)
	requireAuth := middleware.Auth(deps.Issuer)

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.List)
		r.Get("/{id}", teamHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", teamHandler.Create)
			r.Patch("/{id}", teamHandler.Update)
			r.Delete("/{id}", teamHandler.Delete)
			r.Post("/{id}/members", memberHandler.Add)
			r.Get("/{id}/members", memberHandler.List)
		})
	})

	return r
}
