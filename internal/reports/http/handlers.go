package reporthttp

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dentara/dentara/internal/platform/httpx"
	"github.com/dentara/dentara/internal/reports"
)

// ReportService is the aggregation contract used by the handler.
type ReportService interface {
	DailySummary(ctx context.Context, date time.Time) (reports.DailySummary, error)
	MonthlyFinancials(ctx context.Context, year int, month time.Month) ([]reports.MonthlyRow, error)
	PatientFinancialSummary(ctx context.Context, patientID int64) (reports.PatientSummary, error)
	SaveDailySnapshot(ctx context.Context, date time.Time, notes string, actorID int64) (reports.DailySnapshot, error)
	ListSnapshots(ctx context.Context) ([]reports.DailySnapshot, error)
}

// Handler serves the financial report endpoints.
type Handler struct {
	logger  *slog.Logger
	service ReportService
	now     func() time.Time
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{logger: logger, service: service, now: time.Now}
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}
	key := "daily:" + date.Format("2006-01-02")
	value, err := singleflightLoad(r.Context(), key, func(ctx context.Context) (interface{}, error) {
		return h.service.DailySummary(ctx, date)
	})
	if err != nil {
		h.logger.Error("daily summary failed", "date", date.Format("2006-01-02"), "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, value)
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 1 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Year", "year must be a positive integer")
		return
	}
	monthNum, err := strconv.Atoi(q.Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Month", "month must be between 1 and 12")
		return
	}
	key := "monthly:" + strconv.Itoa(year) + ":" + strconv.Itoa(monthNum)
	value, err := singleflightLoad(r.Context(), key, func(ctx context.Context) (interface{}, error) {
		return h.service.MonthlyFinancials(ctx, year, time.Month(monthNum))
	})
	if err != nil {
		h.logger.Error("monthly financials failed", "year", year, "month", monthNum, "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": value})
}

func (h *Handler) handlePatientSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}
	summary, err := h.service.PatientFinancialSummary(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date    string `json:"date"`
		Notes   string `json:"notes"`
		ActorID int64  `json:"actor_id"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}
	date, ok := h.parseDate(w, req.Date)
	if !ok {
		return
	}
	snap, err := h.service.SaveDailySnapshot(r.Context(), date, req.Notes, req.ActorID)
	if err != nil {
		h.logger.Error("snapshot save failed", "date", date.Format("2006-01-02"), "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, snap)
}

func (h *Handler) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.service.ListSnapshots(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"snapshots": snaps})
}

// parseDate accepts YYYY-MM-DD and falls back to today when empty.
func (h *Handler) parseDate(w http.ResponseWriter, raw string) (time.Time, bool) {
	if raw == "" {
		return h.now(), true
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Date", "expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
