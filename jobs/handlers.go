package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dentara/dentara/internal/inventory"
	"github.com/dentara/dentara/internal/reports"
)

// SnapshotService is the slice of the reports service the worker needs.
type SnapshotService interface {
	SaveDailySnapshot(ctx context.Context, date time.Time, notes string, actorID int64) (reports.DailySnapshot, error)
}

// RecomputeService reconciles supplier balances.
type RecomputeService interface {
	RecomputeBalance(ctx context.Context, supplierID int64) (float64, error)
	RecomputeAllBalances(ctx context.Context) (int, error)
}

// StockService lists low-stock items.
type StockService interface {
	LowStock(ctx context.Context) ([]inventory.Item, error)
}

// HandleDailySnapshot persists the financial summary for the payload date,
// defaulting to yesterday when no date is given.
func HandleDailySnapshot(logger *slog.Logger, svc SnapshotService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload DailySnapshotPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		date := time.Now().AddDate(0, 0, -1)
		if payload.Date != "" {
			parsed, err := time.ParseInLocation("2006-01-02", payload.Date, time.Local)
			if err != nil {
				return asynq.SkipRetry
			}
			date = parsed
		}
		snap, err := svc.SaveDailySnapshot(ctx, date, payload.Notes, 0)
		if err != nil {
			logger.Error("daily snapshot job failed", "date", date.Format("2006-01-02"), "error", err)
			return err
		}
		logger.Info("daily snapshot saved", "id", snap.ID, "date", snap.Date.Format("2006-01-02"), "net_profit", snap.NetProfit)
		return nil
	}
}

// HandleSupplierRecompute overwrites stored balances with the re-summed
// history. A zero supplier id in the payload reconciles every supplier,
// which is what the nightly schedule sends.
func HandleSupplierRecompute(logger *slog.Logger, svc RecomputeService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SupplierRecomputePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.SupplierID == 0 {
			count, err := svc.RecomputeAllBalances(ctx)
			if err != nil {
				logger.Error("supplier recompute failed", "processed", count, "error", err)
				return err
			}
			logger.Info("supplier balances recomputed", "processed", count)
			return nil
		}
		balance, err := svc.RecomputeBalance(ctx, payload.SupplierID)
		if err != nil {
			logger.Error("supplier recompute failed", "supplier_id", payload.SupplierID, "error", err)
			return err
		}
		logger.Info("supplier balance recomputed", "supplier_id", payload.SupplierID, "balance", balance)
		return nil
	}
}

// HandleLowStockScan logs every item at or below its threshold so alerting
// can pick it up from the log stream.
func HandleLowStockScan(logger *slog.Logger, svc StockService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload LowStockScanPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		items, err := svc.LowStock(ctx)
		if err != nil {
			logger.Error("low stock scan failed", "error", err)
			return err
		}
		for _, it := range items {
			logger.Warn("low stock", "item_id", it.ID, "name", it.Name, "quantity", it.Quantity, "threshold", it.LowThreshold)
		}
		logger.Info("low stock scan done", "flagged", len(items))
		return nil
	}
}

// KeyStore prunes processed idempotency keys.
type KeyStore interface {
	Cleanup(ctx context.Context, olderThan time.Duration) error
}

// DefaultKeyRetention bounds how long processed idempotency keys are kept
// when the cleanup payload carries no window.
const DefaultKeyRetention = 30 * 24 * time.Hour

// HandleIdempotencyCleanup deletes keys older than the payload retention.
func HandleIdempotencyCleanup(logger *slog.Logger, store KeyStore) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload IdempotencyCleanupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		retention := DefaultKeyRetention
		if payload.RetentionHours > 0 {
			retention = time.Duration(payload.RetentionHours) * time.Hour
		}
		if err := store.Cleanup(ctx, retention); err != nil {
			logger.Error("idempotency cleanup failed", "error", err)
			return err
		}
		logger.Info("idempotency keys pruned", "older_than", retention.String())
		return nil
	}
}
