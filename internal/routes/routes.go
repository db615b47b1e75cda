package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"DEVLINK_BACK-END/internal/config"
	"DEVLINK_BACK-END/internal/handlers"
	"DEVLINK_BACK-END/internal/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth    *handlers.AuthHandler
	Google  *handlers.GoogleAuthHandler
	Profile *handlers.ProfileHandler
	Request *handlers.RequestHandler
	User    *handlers.UserHandler
	Health  *handlers.HealthHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(h Handlers, guard *middleware.SessionGuard, corsCfg config.CORSConfig, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	// Health check routes
	r.Get("/healthz", h.Health.HealthCheck)
	r.Get("/livez", h.Health.LivenessCheck)
	r.Get("/readyz", h.Health.ReadinessCheck)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Authentication routes
	r.Post("/signup", h.Auth.Signup)
	r.Post("/login", h.Auth.Login)
	r.Post("/logout", h.Auth.Logout)
	r.Delete("/user", h.Auth.DeleteUser)
	r.Get("/auth/google/login", h.Google.GoogleLogin)
	r.Get("/auth/google/callback", h.Google.GoogleCallback)

	// Routes below require a session
	r.Group(func(r chi.Router) {
		r.Use(guard.Middleware)

		r.Get("/profile/view", h.Profile.View)
		r.Patch("/profile/edit", h.Profile.Edit)
		r.Patch("/profile/password", h.Profile.ChangePassword)

		r.Post("/request/send/{status}/{toUserId}", h.Request.Send)
		r.Post("/request/review/{status}/{requestId}", h.Request.Review)

		r.Get("/user/request/received", h.User.Received)
		r.Get("/user/connection", h.User.Connections)
	})

	// Root route
	r.Get("/", rootHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   corsCfg.AllowedMethods,
		AllowedHeaders:   corsCfg.AllowedHeaders,
		AllowCredentials: corsCfg.AllowCredentials,
	})
	return c.Handler(r)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("DevLink backend is running."))
}
