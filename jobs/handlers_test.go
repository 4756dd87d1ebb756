package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dentara/dentara/internal/reports"
)

type fakeSnapshotService struct {
	date  time.Time
	notes string
}

func (f *fakeSnapshotService) SaveDailySnapshot(ctx context.Context, date time.Time, notes string, actorID int64) (reports.DailySnapshot, error) {
	f.date = date
	f.notes = notes
	return reports.DailySnapshot{ID: 1, Date: date, Notes: notes}, nil
}

type fakeRecomputeService struct {
	singleIDs []int64
	allCalls  int
}

func (f *fakeRecomputeService) RecomputeBalance(ctx context.Context, supplierID int64) (float64, error) {
	f.singleIDs = append(f.singleIDs, supplierID)
	return 0, nil
}

func (f *fakeRecomputeService) RecomputeAllBalances(ctx context.Context) (int, error) {
	f.allCalls++
	return 3, nil
}

type fakeKeyStore struct {
	olderThan time.Duration
}

func (f *fakeKeyStore) Cleanup(ctx context.Context, olderThan time.Duration) error {
	f.olderThan = olderThan
	return nil
}

func TestSupplierRecomputeTargetsOneSupplier(t *testing.T) {
	svc := &fakeRecomputeService{}
	handle := HandleSupplierRecompute(slog.Default(), svc)

	task, err := NewSupplierRecomputeTask(7)
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), task))

	require.Equal(t, []int64{7}, svc.singleIDs)
	require.Zero(t, svc.allCalls)
}

func TestSupplierRecomputeZeroIDFansOut(t *testing.T) {
	svc := &fakeRecomputeService{}
	handle := HandleSupplierRecompute(slog.Default(), svc)

	task, err := NewSupplierRecomputeTask(0)
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), task))

	require.Equal(t, 1, svc.allCalls)
	require.Empty(t, svc.singleIDs)
}

func TestDailySnapshotDefaultsToYesterday(t *testing.T) {
	svc := &fakeSnapshotService{}
	handle := HandleDailySnapshot(slog.Default(), svc)

	task, err := NewDailySnapshotTask(time.Time{}, "")
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), task))

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	require.Equal(t, yesterday, svc.date.Format("2006-01-02"))
}

func TestIdempotencyCleanupDefaultsRetention(t *testing.T) {
	store := &fakeKeyStore{}
	handle := HandleIdempotencyCleanup(slog.Default(), store)

	task, err := NewIdempotencyCleanupTask(0)
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), task))

	require.Equal(t, DefaultKeyRetention, store.olderThan)
}

func TestIdempotencyCleanupHonoursPayloadRetention(t *testing.T) {
	store := &fakeKeyStore{}
	handle := HandleIdempotencyCleanup(slog.Default(), store)

	task, err := NewIdempotencyCleanupTask(48 * time.Hour)
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), task))

	require.Equal(t, 48*time.Hour, store.olderThan)
}
