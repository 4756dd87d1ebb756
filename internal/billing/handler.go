package billing

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dentara/dentara/internal/platform/httpx"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

type recordPaymentRequest struct {
	AppointmentID *int64  `json:"appointment_id"`
	TotalAmount   float64 `json:"total_amount"`
	PaidAmount    float64 `json:"paid_amount"`
	Method        string  `json:"payment_method"`
	Discounts     float64 `json:"discounts"`
	Taxes         float64 `json:"taxes"`
}

type setRuleRequest struct {
	TreatmentID   int64   `json:"treatment_id" validate:"required"`
	DoctorID      int64   `json:"doctor_id" validate:"required"`
	ClinicPercent float64 `json:"clinic_percent"`
	DoctorPercent float64 `json:"doctor_percent"`
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.ListPayments)
		r.Post("/", h.RecordPayment)
		r.Get("/{id}", h.ShowPayment)
		r.Delete("/{id}", h.DeletePayment)
	})
	r.Route("/split-rules", func(r chi.Router) {
		r.Get("/", h.ListRules)
		r.Put("/", h.SetRule)
	})
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}
	payment, err := h.service.RecordPayment(r.Context(), RecordPaymentInput{
		AppointmentID:  req.AppointmentID,
		TotalAmount:    req.TotalAmount,
		PaidAmount:     req.PaidAmount,
		Method:         req.Method,
		Discounts:      req.Discounts,
		Taxes:          req.Taxes,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		h.logger.Error("record payment failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, payment)
}

func (h *Handler) ShowPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}
	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "")
			return
		}
		h.logger.Error("get payment failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payment)
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	payments, err := h.service.ListPayments(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list payments failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"payments": payments})
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}
	if err := h.service.DeletePayment(r.Context(), id, 0); err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "")
			return
		}
		h.logger.Error("delete payment failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetRule(w http.ResponseWriter, r *http.Request) {
	var req setRuleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "treatment_id and doctor_id are required")
		return
	}
	rule, err := h.service.SetRule(r.Context(), SetRuleInput{
		TreatmentID:   req.TreatmentID,
		DoctorID:      req.DoctorID,
		ClinicPercent: req.ClinicPercent,
		DoctorPercent: req.DoctorPercent,
	})
	if err != nil {
		h.logger.Error("set split rule failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rule)
}

func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.ListRules(r.Context())
	if err != nil {
		h.logger.Error("list split rules failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rules": rules})
}
