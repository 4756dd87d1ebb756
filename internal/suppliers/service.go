package suppliers

import (
	"context"
	"strconv"
	"strings"

	"github.com/dentara/dentara/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context) ([]Supplier, error)
	Get(ctx context.Context, id int64) (Supplier, error)
	Create(ctx context.Context, s Supplier) (int64, error)
	Update(ctx context.Context, id int64, in UpdateInput) error
	Delete(ctx context.Context, id int64) (bool, error)
	ListTransactions(ctx context.Context, supplierID int64) ([]Transaction, error)
	ListInvoices(ctx context.Context, supplierID int64) ([]Invoice, error)
	DeleteTransaction(ctx context.Context, id int64) (bool, error)
}

// AuditPort abstracts audit logging functionality.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service manages suppliers and their running-balance ledger.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, sup Supplier) (Supplier, error) {
	if strings.TrimSpace(sup.Name) == "" {
		return Supplier{}, ErrNameRequired
	}
	id, err := s.repo.Create(ctx, sup)
	if err != nil {
		return Supplier{}, err
	}
	sup.ID = id
	return sup, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return ErrNameRequired
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSupplierNotFound
	}
	return nil
}

// AddTransaction appends a ledger row and moves the stored balance by the
// transaction amount in the same database transaction. Positive amounts grow
// the debt to the supplier.
func (s *Service) AddTransaction(ctx context.Context, tr Transaction, actorID int64) (Transaction, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertTransaction(ctx, tr)
		if err != nil {
			return err
		}
		tr.ID = id
		return tx.AdjustBalance(ctx, tr.SupplierID, tr.Amount)
	})
	if err != nil {
		return Transaction{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "supplier.transaction",
			Entity:   "supplier_transaction",
			EntityID: strconv.FormatInt(tr.ID, 10),
			Meta:     map[string]any{"supplier_id": tr.SupplierID, "amount": tr.Amount},
		})
	}
	return tr, nil
}

// AddInvoice records an invoice and moves the balance, same shape as
// AddTransaction.
func (s *Service) AddInvoice(ctx context.Context, inv Invoice, actorID int64) (Invoice, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertInvoice(ctx, inv)
		if err != nil {
			return err
		}
		inv.ID = id
		return tx.AdjustBalance(ctx, inv.SupplierID, inv.Amount)
	})
	if err != nil {
		return Invoice{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "supplier.invoice",
			Entity:   "supplier_invoice",
			EntityID: strconv.FormatInt(inv.ID, 10),
			Meta:     map[string]any{"supplier_id": inv.SupplierID, "amount": inv.Amount},
		})
	}
	return inv, nil
}

func (s *Service) ListTransactions(ctx context.Context, supplierID int64) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, supplierID)
}

func (s *Service) ListInvoices(ctx context.Context, supplierID int64) ([]Invoice, error) {
	return s.repo.ListInvoices(ctx, supplierID)
}

// DeleteTransaction removes the row without reversing its balance effect.
// The stored balance keeps whatever the row contributed; RecomputeBalance is
// the only way to reconcile afterwards.
func (s *Service) DeleteTransaction(ctx context.Context, id int64, actorID int64) error {
	deleted, err := s.repo.DeleteTransaction(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "supplier.transaction.delete",
			Entity:   "supplier_transaction",
			EntityID: strconv.FormatInt(id, 10),
		})
	}
	return nil
}

// RecomputeBalance re-sums the surviving history and overwrites the stored
// balance. Maintenance only; normal writes never call this.
func (s *Service) RecomputeBalance(ctx context.Context, supplierID int64) (float64, error) {
	var total float64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		sum, err := tx.SumHistory(ctx, supplierID)
		if err != nil {
			return err
		}
		total = sum
		return tx.SetBalance(ctx, supplierID, sum)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// RecomputeAllBalances reconciles every supplier and returns how many were
// processed. The nightly maintenance job calls this.
func (s *Service) RecomputeAllBalances(ctx context.Context) (int, error) {
	sups, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	for i, sup := range sups {
		if _, err := s.RecomputeBalance(ctx, sup.ID); err != nil {
			return i, err
		}
	}
	return len(sups), nil
}
