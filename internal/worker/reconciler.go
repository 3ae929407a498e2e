package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// LedgerFacade exposes the subset of application functionality required by the worker.
type LedgerFacade interface {
	Balances(ctx context.Context, afterMerchantID int64, limit int) ([]model.MerchantBalance, error)
	Reconcile(ctx context.Context, merchantID int64) (*model.Reconciliation, error)
}

// Reconciler periodically compares every stored merchant balance with the
// balance derived from completed orders and withdrawals. It only reports
// drift; it never rewrites the ledger.
type Reconciler struct {
	facade    LedgerFacade
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	jobs   chan int64
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade LedgerFacade, interval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan int64, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// sweep pages through all merchant balances by id.
func (r *Reconciler) sweep(ctx context.Context) {
	var after int64
	for {
		page, err := r.facade.Balances(ctx, after, r.batchSize)
		if err != nil {
			r.logger.Error("list merchant balances failed", slog.String("error", err.Error()))
			return
		}
		for _, b := range page {
			select {
			case <-ctx.Done():
				return
			case r.jobs <- b.MerchantID:
			}
			after = b.MerchantID
		}
		if len(page) < r.batchSize {
			return
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case merchantID, ok := <-r.jobs:
			if !ok {
				return
			}
			r.check(ctx, merchantID)
		}
	}
}

func (r *Reconciler) check(ctx context.Context, merchantID int64) {
	result, err := r.facade.Reconcile(ctx, merchantID)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("reconcile merchant failed", slog.Int64("merchant_id", merchantID), slog.String("error", err.Error()))
		}
		return
	}
	if !result.Consistent() {
		r.logger.Warn("merchant balance drift",
			slog.Int64("merchant_id", merchantID),
			slog.String("stored", result.Stored.String()),
			slog.String("derived", result.Derived.String()),
		)
	}
}
