package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/webscope/siteinfo/internal/fetch"
	"github.com/webscope/siteinfo/internal/httpserver/deps"
	"github.com/webscope/siteinfo/internal/logger"
	"github.com/webscope/siteinfo/internal/website"
)

type createWebsiteRequest struct {
	URL string `json:"url"`
}

// CreateWebsite handles POST /api/website-info: create-or-get by URL.
// 201 when a new record was extracted and stored, 200 when the URL was
// already known, 400 on validation or fetch failure, 500 otherwise.
func CreateWebsite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createWebsiteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rec, created, err := d.Websites.CreateOrGet(r.Context(), req.URL)
		if err != nil {
			writeWebsiteError(w, d, req.URL, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, rec)
	}
}

func writeWebsiteError(w http.ResponseWriter, d deps.Deps, url string, err error) {
	var validationErr *website.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		d.Logger.Warn("website fetch failed",
			logger.String("url", url),
			logger.Error(err))
		writeError(w, http.StatusBadRequest, "Failed to fetch URL: "+fetchErr.Error())
		return
	}

	d.Logger.Error("website processing failed",
		logger.String("url", url),
		logger.Error(err))
	writeError(w, http.StatusInternalServerError, "Failed to process website")
}

// ListWebsites handles GET /api/website-info, newest first.
func ListWebsites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := d.Websites.List(r.Context())
		if err != nil {
			d.Logger.Error("failed to list website records", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to list websites")
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// GetWebsite handles GET /api/website-info/{id}.
func GetWebsite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rec, err := d.Websites.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, website.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			d.Logger.Error("failed to get website record",
				logger.String("id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to get website")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// DeleteWebsite handles DELETE /api/website-info/{id}.
func DeleteWebsite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := d.Websites.Delete(r.Context(), id); err != nil {
			if errors.Is(err, website.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			d.Logger.Error("failed to delete website record",
				logger.String("id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to delete website")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
