package patients

import (
	"time"
)

// Patient represents a patient record.
type Patient struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Age            *int      `json:"age,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	MedicalHistory string    `json:"medical_history,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateInput carries optional field updates; nil fields are left untouched.
type UpdateInput struct {
	Name           *string `json:"name"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
}
