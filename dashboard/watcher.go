// Package dashboard keeps an always-current admin dashboard state in
// memory. A Watcher subscribes to the revenue, products and inventory
// collections and recomputes the full derived state on every snapshot;
// handlers read the latest state without touching the store.
package dashboard

import (
	"context"
	"sync"
	"time"

	"glowstore/backend/config"
	"glowstore/backend/logger"
	"glowstore/backend/lowstock"
	"glowstore/backend/models"
	"glowstore/backend/realtime"
	"glowstore/backend/reconcile"
	"glowstore/backend/revenue"
)

// State is one immutable view of the dashboard. Loading stays true until
// every source collection has delivered its first snapshot; Err carries
// the most recent stream failure while the last good data stays visible.
type State struct {
	Loading bool
	Err     error

	RevenueItems []models.RevenueItem
	RevenueStats models.RevenueStats
	Products     []models.Product
	LowStock     lowstock.Report

	DailyChart   []models.ChartPoint
	MonthlyChart []models.ChartPoint
	YearlyChart  []models.ChartPoint

	UpdatedAt time.Time
}

// Watcher owns the subscriptions and the current State.
type Watcher struct {
	store     realtime.Store
	threshold int
	now       func() time.Time

	mu      sync.Mutex
	state   State
	unsubs  []realtime.Unsubscribe
	started bool

	revSnap  realtime.Snapshot
	prodSnap realtime.Snapshot
	invSnap  realtime.Snapshot
	haveRev  bool
	haveProd bool
	haveInv  bool
}

func NewWatcher(store realtime.Store, threshold int) *Watcher {
	return &Watcher{
		store:     store,
		threshold: threshold,
		now:       time.Now,
		state:     State{Loading: true},
	}
}

// Start subscribes to the three source collections. The initial snapshots
// arrive through the same callbacks as later updates, so the state leaves
// the loading phase as soon as all three have reported once.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	sources := []struct {
		collection string
		apply      func(realtime.Snapshot)
	}{
		{config.ColRevenue, func(s realtime.Snapshot) { w.revSnap, w.haveRev = s, true }},
		{config.ColProducts, func(s realtime.Snapshot) { w.prodSnap, w.haveProd = s, true }},
		{config.ColInventory, func(s realtime.Snapshot) { w.invSnap, w.haveInv = s, true }},
	}

	for _, src := range sources {
		apply := src.apply
		collection := src.collection
		unsub, err := w.store.Subscribe(ctx, collection,
			func(snap realtime.Snapshot) {
				w.mu.Lock()
				apply(snap)
				w.recomputeLocked()
				w.mu.Unlock()
			},
			func(err error) {
				logger.L().Errorf("dashboard: %s stream failed: %v", collection, err)
				w.mu.Lock()
				w.state.Err = err
				w.mu.Unlock()
			},
		)
		if err != nil {
			w.Stop()
			return err
		}
		w.mu.Lock()
		w.unsubs = append(w.unsubs, unsub)
		w.mu.Unlock()
	}
	return nil
}

// State returns a copy of the current state. The slices inside are shared
// with the watcher but never mutated after a recompute publishes them.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Stop cancels every subscription. A callback already in flight may still
// complete; no new one starts afterwards.
func (w *Watcher) Stop() {
	w.mu.Lock()
	unsubs := w.unsubs
	w.unsubs = nil
	w.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}

// recomputeLocked rebuilds the whole derived state from the latest
// snapshots. A fresh snapshot clears any stream error.
func (w *Watcher) recomputeLocked() {
	if !w.haveRev || !w.haveProd || !w.haveInv {
		return
	}
	started := time.Now()
	now := w.now()

	items, stats := revenue.Ingest(w.revSnap)
	products := reconcile.MergeSnapshots(w.prodSnap, w.invSnap, now)
	report := lowstock.Scan(products, w.threshold)

	w.state = State{
		RevenueItems: items,
		RevenueStats: stats,
		Products:     products,
		LowStock:     report,
		DailyChart:   revenue.DailyChartData(items, now),
		MonthlyChart: revenue.MonthlyChartData(items, now),
		YearlyChart:  revenue.YearlyChartData(items, now),
		UpdatedAt:    now,
	}

	TotalRevenue.Set(float64(stats.TotalRevenue))
	ProductCount.Set(float64(len(products)))
	LowStockCount.Set(float64(len(report.LowStock)))
	RecomputeDuration.Observe(time.Since(started).Seconds())
}
