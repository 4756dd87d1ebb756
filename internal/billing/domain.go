package billing

import (
	"errors"
	"time"
)

// SplitRule configures how a payment's net amount is divided between the
// clinic and the treating doctor for one (treatment, doctor) pair. At most one
// rule exists per pair; SetRule upserts.
type SplitRule struct {
	ID            int64   `json:"id"`
	TreatmentID   int64   `json:"treatment_id"`
	DoctorID      int64   `json:"doctor_id"`
	ClinicPercent float64 `json:"clinic_percent"`
	DoctorPercent float64 `json:"doctor_percent"`

	// Joined for listings.
	TreatmentName string `json:"treatment_name,omitempty"`
	DoctorName    string `json:"doctor_name,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Payment is an immutable ledger entry. Shares are computed at creation time
// and frozen; later rule changes never touch past payments. AppointmentID is
// nil for walk-in payments.
type Payment struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	AppointmentID *int64    `json:"appointment_id"`
	TotalAmount   float64   `json:"total_amount"`
	PaidAmount    float64   `json:"paid_amount"`
	Discounts     float64   `json:"discounts"`
	Taxes         float64   `json:"taxes"`
	ClinicShare   float64   `json:"clinic_share"`
	DoctorShare   float64   `json:"doctor_share"`
	Method        string    `json:"payment_method"`
	DatePaid      time.Time `json:"date_paid"`
}

// RecordPaymentInput describes a payment to record.
type RecordPaymentInput struct {
	AppointmentID  *int64
	TotalAmount    float64
	PaidAmount     float64
	Method         string
	Discounts      float64
	Taxes          float64
	IdempotencyKey string
	ActorID        int64
}

// SetRuleInput upserts the split rule for a (treatment, doctor) pair.
type SetRuleInput struct {
	TreatmentID   int64
	DoctorID      int64
	ClinicPercent float64
	DoctorPercent float64
}

// ErrPaymentNotFound indicates a delete against a missing payment id.
var ErrPaymentNotFound = errors.New("billing: payment not found")
