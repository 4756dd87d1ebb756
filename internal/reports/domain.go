package reports

import "time"

// DailySummary is the read-side view of one calendar day.
//
// DailyNetProfit is clinic income minus expenses, not gross income minus
// expenses; the clinic only keeps its own share of each payment. The monthly
// rows use the gross definition instead. The two are intentionally different
// and must not be unified.
type DailySummary struct {
	Date              time.Time `json:"date"`
	IncomeTotal       float64   `json:"income_total"`
	ClinicIncome      float64   `json:"clinic_income"`
	DoctorIncome      float64   `json:"doctor_income"`
	ExpenseTotal      float64   `json:"expense_total"`
	DailyNetProfit    float64   `json:"net_profit"`
	PatientsCount     int       `json:"patients_count"`
	AppointmentsCount int       `json:"appointments_count"`
}

// MonthlyRow is one day's bucket in the monthly time series. NetTotal is
// gross income minus expense.
type MonthlyRow struct {
	Date        string  `json:"date"`
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	ClinicShare float64 `json:"clinic_share"`
	DoctorShare float64 `json:"doctor_share"`
	NetTotal    float64 `json:"net_total"`
}

// PatientSummary sums a patient's appointment-linked payments. Walk-in
// payments carry no appointment and are invisible here.
type PatientSummary struct {
	PatientID       int64      `json:"patient_id"`
	TotalAmount     float64    `json:"total_amount"`
	TotalPaid       float64    `json:"total_paid"`
	Balance         float64    `json:"balance"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
}

// DailySnapshot is a persisted point-in-time copy of a DailySummary. It is
// written only by the explicit snapshot action and never kept in sync with
// later payment or expense edits.
type DailySnapshot struct {
	ID            int64     `json:"id"`
	Date          time.Time `json:"date"`
	TotalIncome   float64   `json:"total_income"`
	ClinicIncome  float64   `json:"clinic_income"`
	DoctorIncome  float64   `json:"doctor_income"`
	TotalExpenses float64   `json:"total_expenses"`
	NetProfit     float64   `json:"net_profit"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Raw records scanned from the ledger store for aggregation.

type PaymentRecord struct {
	PaidAmount  float64
	ClinicShare float64
	DoctorShare float64
	DatePaid    time.Time
}

type ExpenseRecord struct {
	Amount float64
	Date   time.Time
}

type ManualRecord struct {
	ExtraIncome  float64
	ExtraExpense float64
	Date         time.Time
}

type AppointmentRecord struct {
	PatientID *int64
	Date      time.Time
}

type PatientPaymentRecord struct {
	TotalAmount float64
	PaidAmount  float64
	DatePaid    *time.Time
}
