package handlers

import (
	"net/http"

	"github.com/webscope/siteinfo/internal/httpserver/deps"
)

// CurrencyRates handles GET /api/currency-rates. It always answers 200;
// upstream failures surface as null fields, never as an error status.
func CurrencyRates(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := d.Rates.CurrencyRates(r.Context())
		writeJSON(w, http.StatusOK, snapshot)
	}
}
