package reporthttp

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dentara/dentara/internal/reports"
)

type stubService struct {
	dailyDate time.Time
}

func (s *stubService) DailySummary(ctx context.Context, date time.Time) (reports.DailySummary, error) {
	s.dailyDate = date
	return reports.DailySummary{Date: date}, nil
}

func (s *stubService) MonthlyFinancials(ctx context.Context, year int, month time.Month) ([]reports.MonthlyRow, error) {
	return nil, nil
}

func (s *stubService) PatientFinancialSummary(ctx context.Context, patientID int64) (reports.PatientSummary, error) {
	return reports.PatientSummary{}, nil
}

func (s *stubService) SaveDailySnapshot(ctx context.Context, date time.Time, notes string, actorID int64) (reports.DailySnapshot, error) {
	return reports.DailySnapshot{Date: date, Notes: notes}, nil
}

func (s *stubService) ListSnapshots(ctx context.Context) ([]reports.DailySnapshot, error) {
	return nil, nil
}

func newTestRouter(svc ReportService, clock func() time.Time) chi.Router {
	h := NewHandler(slog.Default(), svc)
	h.WithNow(clock)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestDailyDefaultsToHandlerClock(t *testing.T) {
	svc := &stubService{}
	today := time.Date(2025, 3, 15, 9, 30, 0, 0, time.Local)
	router := newTestRouter(svc, func() time.Time { return today })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/daily", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !svc.dailyDate.Equal(today) {
		t.Fatalf("expected clock date %v got %v", today, svc.dailyDate)
	}
}

func TestDailyRejectsMalformedDate(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc, time.Now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/daily?date=15-03-2025", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !svc.dailyDate.IsZero() {
		t.Fatalf("service called with %v on bad input", svc.dailyDate)
	}
}

func TestMonthlyValidatesMonth(t *testing.T) {
	router := newTestRouter(&stubService{}, time.Now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/monthly?year=2025&month=13", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
