package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDailySnapshot persists the end-of-day financial summary.
	TaskDailySnapshot = "reports:daily_snapshot"
	// TaskSupplierRecompute re-derives supplier stored balances.
	TaskSupplierRecompute = "suppliers:recompute_balance"
	// TaskLowStockScan logs every inventory item at or below threshold.
	TaskLowStockScan = "inventory:low_stock_scan"
	// TaskIdempotencyCleanup prunes processed idempotency keys.
	TaskIdempotencyCleanup = "shared:idempotency_cleanup"
)

// DailySnapshotPayload names the date to snapshot.
type DailySnapshotPayload struct {
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

// NewDailySnapshotTask constructs an Asynq task for the nightly snapshot.
// A zero date leaves the payload date empty and the handler snapshots
// yesterday.
func NewDailySnapshotTask(date time.Time, notes string) (*asynq.Task, error) {
	var day string
	if !date.IsZero() {
		day = date.Format("2006-01-02")
	}
	body, err := json.Marshal(DailySnapshotPayload{Date: day, Notes: notes})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailySnapshot, body, asynq.Queue(QueueDefault)), nil
}

// SupplierRecomputePayload identifies the supplier to reconcile. A zero
// SupplierID reconciles every supplier.
type SupplierRecomputePayload struct {
	SupplierID int64 `json:"supplier_id"`
}

// NewSupplierRecomputeTask constructs an Asynq task for balance maintenance.
// Pass 0 to reconcile all suppliers.
func NewSupplierRecomputeTask(supplierID int64) (*asynq.Task, error) {
	body, err := json.Marshal(SupplierRecomputePayload{SupplierID: supplierID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSupplierRecompute, body, asynq.Queue(QueueDefault)), nil
}

// LowStockScanPayload carries scheduling metadata.
type LowStockScanPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewLowStockScanTask constructs an Asynq task for the stock alert scan.
func NewLowStockScanTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(LowStockScanPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, body, asynq.Queue(QueueDefault)), nil
}

// IdempotencyCleanupPayload sets the retention window in hours. Zero means
// the handler default.
type IdempotencyCleanupPayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewIdempotencyCleanupTask constructs an Asynq task that prunes old
// idempotency keys.
func NewIdempotencyCleanupTask(retention time.Duration) (*asynq.Task, error) {
	body, err := json.Marshal(IdempotencyCleanupPayload{RetentionHours: int(retention.Hours())})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskIdempotencyCleanup, body, asynq.Queue(QueueDefault)), nil
}
