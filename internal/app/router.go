package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dentara/dentara/internal/billing"
	"github.com/dentara/dentara/internal/inventory"
	"github.com/dentara/dentara/internal/ledger"
	"github.com/dentara/dentara/internal/masterdata/doctors"
	"github.com/dentara/dentara/internal/masterdata/patients"
	"github.com/dentara/dentara/internal/masterdata/treatments"
	"github.com/dentara/dentara/internal/observability"
	reporthttp "github.com/dentara/dentara/internal/reports/http"
	"github.com/dentara/dentara/internal/scheduling"
	"github.com/dentara/dentara/internal/suppliers"
	"github.com/dentara/dentara/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	PatientsHandler   *patients.Handler
	DoctorsHandler    *doctors.Handler
	TreatmentsHandler *treatments.Handler
	SchedulingHandler *scheduling.Handler
	BillingHandler    *billing.Handler
	LedgerHandler     *ledger.Handler
	ReportsHandler    *reporthttp.Handler
	SuppliersHandler  *suppliers.Handler
	InventoryHandler  *inventory.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with Dentara defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/patients", params.PatientsHandler.MountRoutes)
		r.Route("/doctors", params.DoctorsHandler.MountRoutes)
		r.Route("/treatments", params.TreatmentsHandler.MountRoutes)
		r.Route("/appointments", params.SchedulingHandler.MountRoutes)
		r.Route("/billing", params.BillingHandler.MountRoutes)
		params.LedgerHandler.MountRoutes(r)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
		r.Route("/suppliers", params.SuppliersHandler.MountRoutes)
		r.Route("/inventory", params.InventoryHandler.MountRoutes)
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
