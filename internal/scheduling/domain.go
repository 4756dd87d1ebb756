package scheduling

import (
	"errors"
	"time"
)

// Appointment statuses are free text; these are the values the booking UI
// offers. Anything else is stored as-is.
const (
	StatusScheduled = "scheduled"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
	StatusPostponed = "postponed"
)

// Appointment links a patient, doctor and treatment at a scheduled time.
type Appointment struct {
	ID          int64     `json:"id"`
	PatientID   *int64    `json:"patient_id"`
	DoctorID    *int64    `json:"doctor_id"`
	TreatmentID *int64    `json:"treatment_id"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`

	// Joined for listings.
	PatientName   string `json:"patient_name,omitempty"`
	DoctorName    string `json:"doctor_name,omitempty"`
	TreatmentName string `json:"treatment_name,omitempty"`
}

// BookInput describes a new appointment.
type BookInput struct {
	PatientID   *int64
	DoctorID    *int64
	TreatmentID *int64
	Date        time.Time
	Status      string
	Notes       string
}

// UpdateInput carries optional field updates; nil fields are left untouched.
type UpdateInput struct {
	Date   *time.Time `json:"date"`
	Status *string    `json:"status"`
	Notes  *string    `json:"notes"`
}

// ErrNotFound indicates a missing appointment id.
var ErrNotFound = errors.New("scheduling: appointment not found")
