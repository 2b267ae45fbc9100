package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the application's routes. Content retrieval sits
// outside RequireAuth because anonymous reads of public nodes are allowed;
// the handler authenticates optionally on its own.
func NewRouter(
	app *AppHandler,
	users *UserHandler,
	auth *AuthHandler,
	files *FileHandler,
	authMiddleware *AuthMiddleware,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Public routes.
	r.Get("/status", app.Status)
	r.Get("/stats", app.Stats)
	r.Post("/users", users.Create)
	r.Get("/connect", auth.Connect)
	r.Get("/disconnect", auth.Disconnect)
	r.Get("/files/{id}/data", files.Data)

	// Routes requiring an authenticated session.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/users/me", users.Me)
		r.Post("/files", files.Upload)
		r.Get("/files", files.Index)
		r.Get("/files/{id}", files.Show)
		r.Put("/files/{id}/publish", files.Publish)
		r.Put("/files/{id}/unpublish", files.Unpublish)
	})

	return r
}
