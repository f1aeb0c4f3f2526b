package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/praetor-admin/praetor-admin/internal/auth"
	"github.com/praetor-admin/praetor-admin/internal/employees"
	"github.com/praetor-admin/praetor-admin/internal/observability"
	"github.com/praetor-admin/praetor-admin/internal/permissions"
	"github.com/praetor-admin/praetor-admin/internal/projects"
	"github.com/praetor-admin/praetor-admin/internal/roles"
	"github.com/praetor-admin/praetor-admin/internal/token"
	"github.com/praetor-admin/praetor-admin/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Tokens             *token.Service
	AuthHandler        *auth.Handler
	PermissionsHandler *permissions.Handler
	RolesHandler       *roles.Handler
	UsersHandler       *users.Handler
	EmployeesHandler   *employees.Handler
	ProjectsHandler    *projects.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with service defaults. Every /api route
// other than auth sits behind the bearer middleware; per-route permission
// checks happen inside each handler's mount.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.BearerMiddleware(params.Tokens, params.Logger))

		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/permissions", params.PermissionsHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/employees", params.EmployeesHandler.MountRoutes)
		r.Route("/projects", params.ProjectsHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
