package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/category-management/internal/category"
	"github.com/frahmantamala/category-management/internal/transport/middleware"
	"github.com/frahmantamala/category-management/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires middleware and the category API onto the router.
// The category surface is four operations on one aggregate.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, categoryHandler *category.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/category", func(cr chi.Router) {
			cr.Post("/", categoryHandler.CreateCategory)
			cr.Get("/", categoryHandler.ListCategories)
			cr.Put("/{id}", categoryHandler.UpdateCategory)
			cr.Delete("/{id}", categoryHandler.DeleteCategory)
		})
	})
}
