package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/webscope/siteinfo/internal/httpserver/deps"
	"github.com/webscope/siteinfo/internal/httpserver/handlers"
)

func init() { Register(registerRates) }

func registerRates(r chi.Router, d deps.Deps) {
	r.Get("/api/currency-rates", handlers.CurrencyRates(d))
}
