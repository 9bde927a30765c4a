package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/auth"
	"github.com/frahmantamala/employee-directory/internal/division"
	"github.com/frahmantamala/employee-directory/internal/employee"
	"github.com/frahmantamala/employee-directory/internal/transport/middleware"
	"github.com/frahmantamala/employee-directory/internal/transport/swagger"
	"github.com/frahmantamala/employee-directory/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RouterDeps bundles what RegisterAllRoutes wires together.
type RouterDeps struct {
	Config          *internal.Config
	DB              *sql.DB
	AuthHandler     *auth.Handler
	DivisionHandler *division.Handler
	EmployeeHandler *employee.Handler
	UserHandler     *user.Handler
	StaticDir       string // local avatar directory, empty when the s3 driver is active
	Logger          *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	router.Use(middleware.CORS(deps.Config.Server.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))

	// Serve the OpenAPI spec and swagger UI at root.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Stored avatar images are served statically for the local driver.
	if deps.StaticDir != "" {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(deps.StaticDir)))
		router.Get("/storage/*", fs.ServeHTTP)
	}

	router.Post("/login", deps.AuthHandler.Login)

	// Listings are public by default, matching the dashboard's read-only
	// views; flip public_listings off to require a bearer everywhere.
	publicListings := deps.Config.Server.PublicListings

	router.Route("/divisions", func(dr chi.Router) {
		if publicListings {
			dr.Get("/", deps.DivisionHandler.ListDivisions)
		}

		dr.Group(func(gr chi.Router) {
			gr.Use(deps.AuthHandler.AuthMiddleware)

			if !publicListings {
				gr.Get("/", deps.DivisionHandler.ListDivisions)
			}
			gr.Post("/", deps.DivisionHandler.CreateDivision)
			gr.Put("/{id}", deps.DivisionHandler.UpdateDivision)
			gr.Delete("/{id}", deps.DivisionHandler.DeleteDivision)
		})
	})

	router.Route("/employees", func(er chi.Router) {
		if publicListings {
			er.Get("/", deps.EmployeeHandler.ListEmployees)
		}

		er.Group(func(gr chi.Router) {
			gr.Use(deps.AuthHandler.AuthMiddleware)

			if !publicListings {
				gr.Get("/", deps.EmployeeHandler.ListEmployees)
			}
			gr.Post("/", deps.EmployeeHandler.CreateEmployee)
			gr.Put("/{id}", deps.EmployeeHandler.UpdateEmployee)
			// Multipart clients that cannot send PUT use POST with the
			// same body (method override).
			gr.Post("/{id}", deps.EmployeeHandler.UpdateEmployee)
			gr.Delete("/{id}", deps.EmployeeHandler.DeleteEmployee)
		})
	})

	router.Group(func(pr chi.Router) {
		pr.Use(deps.AuthHandler.AuthMiddleware)

		pr.Post("/logout", deps.AuthHandler.Logout)
		pr.Get("/profile", deps.UserHandler.GetProfile)
		pr.Put("/profile", deps.UserHandler.UpdateProfile)
	})
}
