package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/nananom-farms/backend/internal/admin"
	"github.com/nananom-farms/backend/internal/appointments"
	"github.com/nananom-farms/backend/internal/auth"
	"github.com/nananom-farms/backend/internal/enquiries"
	"github.com/nananom-farms/backend/internal/platform/httpx"
	"github.com/nananom-farms/backend/internal/services"
)

// uuidPattern accepts only canonical lowercase v4 UUIDs; anything else
// falls through to the 404 handler.
const uuidPattern = `{id:[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}}`

// RouterConfig aggregates everything the HTTP router needs.
type RouterConfig struct {
	Middleware   MiddlewareConfig
	Auth         *auth.Handler
	Services     *services.Handler
	Appointments *appointments.Handler
	Enquiries    *enquiries.Handler
	Admin        *admin.Handler
	Health       http.HandlerFunc
}

// NewRouter assembles the chi router with the full middleware stack and
// route table.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(MiddlewareStack(cfg.Middleware)...)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.Error(w, http.StatusNotFound, "Resource not found.")
	})
	r.MethodNotAllowed(methodNotAllowed(r))

	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health)
	}
	if cfg.Middleware.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Middleware.Metrics.Handler())
	}

	loginLimiter := httprate.LimitByIP(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter)
			r.Post("/register", cfg.Auth.Register)
			r.Post("/login", cfg.Auth.Login)
			r.Post("/admin/login", cfg.Auth.AdminLogin)
		})
		r.Get("/logout", cfg.Auth.Logout)
		r.Get("/admin/logout", cfg.Auth.Logout)

		r.Get("/services", cfg.Services.List)
		r.Get("/services/"+uuidPattern, cfg.Services.Get)
		r.Post("/admin/services", cfg.Services.Create)
		r.Put("/admin/services/"+uuidPattern, cfg.Services.Update)
		r.Delete("/admin/services/"+uuidPattern, cfg.Services.Delete)

		r.Get("/appointments", cfg.Appointments.List)
		r.Post("/appointments", cfg.Appointments.Create)
		r.Get("/appointments/"+uuidPattern, cfg.Appointments.Get)
		r.Put("/appointments/"+uuidPattern, cfg.Appointments.Update)
		r.Delete("/appointments/"+uuidPattern, cfg.Appointments.Delete)

		r.Get("/enquiries", cfg.Enquiries.List)
		r.Post("/create_enquiries", cfg.Enquiries.Create)
		r.Get("/enquiries/"+uuidPattern, cfg.Enquiries.Get)
		r.Put("/enquiries/"+uuidPattern, cfg.Enquiries.Update)
		r.Delete("/enquiries/"+uuidPattern, cfg.Enquiries.Delete)

		r.Post("/admin/register", cfg.Admin.RegisterUser)
	})

	r.Get("/admin/dashboard", cfg.Admin.Dashboard)
	r.Get("/admin/users", cfg.Admin.ListUsers)

	if base := strings.Trim(cfg.Middleware.Config.BasePath, "/"); base != "" {
		outer := chi.NewRouter()
		outer.Mount("/"+base, r)
		return outer
	}
	return r
}

type methodNotAllowedBody struct {
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	AllowedMethods []string `json:"allowed_methods"`
}

// methodNotAllowed reports which methods the matched pattern actually
// serves, both in the Allow header and the response body.
func methodNotAllowed(router chi.Router) http.HandlerFunc {
	candidates := []string{
		http.MethodGet, http.MethodHead, http.MethodPost,
		http.MethodPut, http.MethodPatch, http.MethodDelete,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		// When mounted under a base path the request URL still carries
		// the prefix; RoutePath is the path relative to this router.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
			path = rctx.RoutePath
		}
		var allowed []string
		for _, method := range candidates {
			rctx := chi.NewRouteContext()
			if router.Match(rctx, method, path) {
				allowed = append(allowed, method)
			}
		}
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		httpx.JSON(w, http.StatusMethodNotAllowed, methodNotAllowedBody{
			Status:         "error",
			Message:        "Method not allowed.",
			AllowedMethods: allowed,
		})
	}
}
