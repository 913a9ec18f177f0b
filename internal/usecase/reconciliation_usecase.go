package usecase

import (
	"context"
	"time"

	"github.com/iho/finledger/internal/recurrence"
)

// ReconciliationUseCase keeps derived entries in line with their sources.
type ReconciliationUseCase struct {
	store *Store
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(store *Store) *ReconciliationUseCase {
	return &ReconciliationUseCase{store: store}
}

// Sync runs one recompute pass and persists whatever it changed. It also
// repairs the ledger after an earlier partial failure.
func (uc *ReconciliationUseCase) Sync(ctx context.Context) (*Result, error) {
	return uc.store.Mutate(ctx, OpSync, func(*recurrence.State) error { return nil })
}

// ReconciliationReport describes how far the stored ledger drifted from its
// sources without changing anything.
type ReconciliationReport struct {
	Horizon   recurrence.Horizon
	Report    recurrence.Report
	InSync    bool
	CheckedAt time.Time
}

// Check computes what a sync would change.
func (uc *ReconciliationUseCase) Check(ctx context.Context) (*ReconciliationReport, error) {
	st, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	h := uc.store.Horizon()
	_, report, changed := recurrence.Recompute(st, h, &recurrence.SequenceIDs{Prefix: "dry-run-"})

	return &ReconciliationReport{
		Horizon:   h,
		Report:    report,
		InSync:    !changed,
		CheckedAt: uc.store.now().UTC(),
	}, nil
}
