package ledger

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dentara/dentara/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

type expenseRequest struct {
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	Date        *time.Time `json:"date"`
}

type manualEntryRequest struct {
	Date         *time.Time `json:"date"`
	ExtraIncome  float64    `json:"extra_income"`
	ExtraExpense float64    `json:"extra_expense"`
	Notes        string     `json:"notes"`
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", h.ListExpenses)
		r.Post("/", h.AddExpense)
		r.Delete("/{id}", h.DeleteExpense)
	})
	r.Route("/manual-entries", func(r chi.Router) {
		r.Get("/", h.ListManualEntries)
		r.Post("/", h.AddManualEntry)
		r.Delete("/{id}", h.DeleteManualEntry)
	})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	expenses, err := h.service.ListExpenses(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list expenses failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}
	expense := Expense{Description: req.Description, Category: req.Category, Amount: req.Amount}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	created, err := h.service.AddExpense(r.Context(), expense)
	if err != nil {
		h.logger.Error("add expense failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteExpense)
}

func (h *Handler) ListManualEntries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	entries, err := h.service.ListManualEntries(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list manual entries failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) AddManualEntry(w http.ResponseWriter, r *http.Request) {
	var req manualEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}
	entry := ManualEntry{ExtraIncome: req.ExtraIncome, ExtraExpense: req.ExtraExpense, Notes: req.Notes}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	created, err := h.service.AddManualEntry(r.Context(), entry)
	if err != nil {
		h.logger.Error("add manual entry failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteManualEntry(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteManualEntry)
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}
	if err := fn(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "")
			return
		}
		h.logger.Error("delete ledger entry failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
