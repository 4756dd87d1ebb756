package billing

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dentara/dentara/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	RuleSource
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	AppointmentRefs(ctx context.Context, appointmentID int64) (treatmentID, doctorID *int64, err error)
	GetPayment(ctx context.Context, id int64) (Payment, error)
	ListPayments(ctx context.Context, limit, offset int) ([]Payment, error)
	ListRules(ctx context.Context) ([]SplitRule, error)
}

// AuditPort abstracts audit logging functionality.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates payment recording and split rule management.
type Service struct {
	repo        RepositoryPort
	audit       AuditPort
	idempotency *shared.IdempotencyStore
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort, idem *shared.IdempotencyStore) *Service {
	return &Service{repo: repo, audit: audit, idempotency: idem}
}

// RecordPayment computes the clinic/doctor split and persists the payment with
// a server-assigned timestamp. Amounts are stored as given: the ledger accepts
// zero, negative and paid-over-total amounts.
func (s *Service) RecordPayment(ctx context.Context, input RecordPaymentInput) (Payment, error) {
	if input.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.CheckAndInsert(ctx, input.IdempotencyKey, "billing"); err != nil {
			return Payment{}, err
		}
	}

	var treatmentID, doctorID *int64
	if input.AppointmentID != nil {
		var err error
		treatmentID, doctorID, err = s.repo.AppointmentRefs(ctx, *input.AppointmentID)
		if err != nil {
			return Payment{}, err
		}
	}

	clinicShare, doctorShare, err := ComputeSplit(ctx, s.repo, treatmentID, doctorID, input.TotalAmount, input.Discounts, input.Taxes)
	if err != nil {
		return Payment{}, err
	}

	payment := Payment{
		Code:          uuid.NewString(),
		AppointmentID: input.AppointmentID,
		TotalAmount:   input.TotalAmount,
		PaidAmount:    input.PaidAmount,
		Discounts:     input.Discounts,
		Taxes:         input.Taxes,
		ClinicShare:   clinicShare,
		DoctorShare:   doctorShare,
		Method:        input.Method,
		DatePaid:      time.Now(),
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertPayment(ctx, payment)
		if err != nil {
			return err
		}
		payment.ID = id
		return nil
	})
	if err != nil {
		if input.IdempotencyKey != "" && s.idempotency != nil {
			_ = s.idempotency.Delete(ctx, input.IdempotencyKey)
		}
		return Payment{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  input.ActorID,
			Action:   "payment.create",
			Entity:   "payment",
			EntityID: strconv.FormatInt(payment.ID, 10),
			Meta: map[string]any{
				"total":        payment.TotalAmount,
				"paid":         payment.PaidAmount,
				"clinic_share": payment.ClinicShare,
				"doctor_share": payment.DoctorShare,
			},
		})
	}

	return payment, nil
}

// DeletePayment hard-deletes a payment. Stored daily snapshots are not
// adjusted; they are point-in-time records.
func (s *Service) DeletePayment(ctx context.Context, id int64, actorID int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		deleted, err := tx.DeletePayment(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrPaymentNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "payment.delete",
			Entity:   "payment",
			EntityID: strconv.FormatInt(id, 10),
		})
	}
	return nil
}

// SetRule upserts the split rule for a (treatment, doctor) pair. Percentages
// are stored as given; pairs not summing to 100 are accepted.
func (s *Service) SetRule(ctx context.Context, input SetRuleInput) (SplitRule, error) {
	rule := SplitRule{
		TreatmentID:   input.TreatmentID,
		DoctorID:      input.DoctorID,
		ClinicPercent: input.ClinicPercent,
		DoctorPercent: input.DoctorPercent,
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.UpsertRule(ctx, rule)
		if err != nil {
			return err
		}
		rule.ID = id
		return nil
	})
	if err != nil {
		return SplitRule{}, err
	}
	return rule, nil
}

// GetPayment fetches one payment.
func (s *Service) GetPayment(ctx context.Context, id int64) (Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

// ListPayments returns payments newest first.
func (s *Service) ListPayments(ctx context.Context, limit, offset int) ([]Payment, error) {
	return s.repo.ListPayments(ctx, limit, offset)
}

// ListRules returns all configured split rules.
func (s *Service) ListRules(ctx context.Context) ([]SplitRule, error) {
	return s.repo.ListRules(ctx)
}
