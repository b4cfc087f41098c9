package reconcile

import (
	"context"
	"fmt"
	"time"

	"glowstore/backend/config"
	"glowstore/backend/realtime"
)

// PropagateStockUpdate writes a new stock quantity for one variant of one
// product. Only the products branch is written; the inventory branch keeps
// whatever stock it holds and is surfaced through Diff instead of being
// rewritten here.
func PropagateStockUpdate(ctx context.Context, store realtime.Store, productID string, variantIndex int, newStock int, now time.Time) error {
	if variantIndex < 0 {
		return fmt.Errorf("reconcile: variant index %d out of range", variantIndex)
	}
	if newStock < 0 {
		return fmt.Errorf("reconcile: stock quantity must not be negative, got %d", newStock)
	}
	fields := map[string]interface{}{
		fmt.Sprintf("variants.%d.stockQty", variantIndex): newStock,
		"updatedAt": now,
	}
	return store.Update(ctx, config.ColProducts, productID, fields)
}

// SyncLegacyInventoryStock mirrors a stock write into the inventory branch.
// Callers that still need the legacy branch in step must invoke this
// explicitly after PropagateStockUpdate; nothing does it implicitly.
func SyncLegacyInventoryStock(ctx context.Context, store realtime.Store, productID string, variantIndex int, newStock int) error {
	if variantIndex < 0 {
		return fmt.Errorf("reconcile: variant index %d out of range", variantIndex)
	}
	fields := map[string]interface{}{
		fmt.Sprintf("variants.%d.stockQty", variantIndex): newStock,
	}
	return store.Update(ctx, config.ColInventory, productID, fields)
}
