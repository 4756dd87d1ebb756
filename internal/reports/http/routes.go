package reporthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers the report endpoints onto the router. The daily and
// monthly reads carry a tighter rate limit than the rest of the API.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(30, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/daily", h.handleDaily)
		gr.Get("/monthly", h.handleMonthly)
	})
	r.Get("/patients/{id}/summary", h.handlePatientSummary)
	r.Post("/daily/snapshot", h.handleSaveSnapshot)
	r.Get("/snapshots", h.handleListSnapshots)
}
