package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Roland778ad/devops-capstone-project/internal/middleware"
)

// NewRouter wires the account routes behind the shared middleware stack.
func NewRouter(h *AccountHandler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.SecurityHeaders)
	router.Use(chimiddleware.Recoverer)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("resource %s not found", r.URL.Path))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path))
	})

	router.Get("/", h.Index)
	router.Get("/health", h.Health)

	router.Post("/accounts", h.Create)
	router.Get("/accounts", h.List)
	router.Get("/accounts/{id}", h.Get)
	router.Put("/accounts/{id}", h.Update)
	router.Delete("/accounts/{id}", h.Delete)

	return router
}
