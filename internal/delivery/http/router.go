package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"corazones/internal/delivery/http/controllers"
	"corazones/internal/delivery/http/helpers"
	"corazones/internal/delivery/http/middleware"
	"corazones/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Admin routes are wrapped with RequireAuth; everything else is public.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	catalogController *controllers.CatalogController,
	authController *controllers.AuthController,
	adminController *controllers.AdminController,
) http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("GET /health", healthCheck)

	// Events and registrations
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{slug}", eventController.GetEvent)
	mux.HandleFunc("POST /events/{slug}/registrations", registrationController.Submit)
	mux.HandleFunc("GET /registrations/lookup", registrationController.Lookup)

	// Catalog
	mux.HandleFunc("GET /products", catalogController.ListProducts)
	mux.HandleFunc("GET /products/{slug}", catalogController.GetProduct)
	mux.HandleFunc("GET /packages", catalogController.ListPackages)
	mux.HandleFunc("GET /packages/{slug}", catalogController.GetPackage)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Admin
	mux.HandleFunc("POST /admin/events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("POST /admin/products/import", requireAuth(adminController.ImportCatalog))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(middleware.LoggingMiddleware(logger, mux))
}

// healthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /health [get]
func healthCheck(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
