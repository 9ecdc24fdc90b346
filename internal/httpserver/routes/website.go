package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/webscope/siteinfo/internal/httpserver/deps"
	"github.com/webscope/siteinfo/internal/httpserver/handlers"
)

func init() { Register(registerWebsite) }

func registerWebsite(r chi.Router, d deps.Deps) {
	r.Route("/api/website-info", func(r chi.Router) {
		r.Post("/", handlers.CreateWebsite(d))
		r.Get("/", handlers.ListWebsites(d))
		r.Get("/{id}", handlers.GetWebsite(d))
		r.Delete("/{id}", handlers.DeleteWebsite(d))
	})
}
