package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/config"
	"glowstore/backend/logger"
	"glowstore/backend/models"
	"glowstore/backend/realtime"
)

// RecordCompletedOrder appends one RevenueItem per order line with
// completedAt set to now. It is append-only and keeps no idempotency key:
// invoking it twice for the same order double-counts revenue, so callers
// must trigger it exactly once per completion transition.
func RecordCompletedOrder(ctx context.Context, store realtime.Store, order models.Order, info models.UserInfo, now time.Time) error {
	failed := 0
	for _, line := range order.Items {
		item := models.RevenueItem{
			OrderID:         order.ID,
			UserID:          order.UserID,
			UserInfo:        info,
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			ProductImage:    line.ProductImage,
			ProductCategory: line.ProductCategory,
			Quantity:        line.Quantity,
			UnitPrice:       line.Price,
			TotalPrice:      line.Price * int64(line.Quantity),
			CompletedAt:     now,
			Date:            now.Format(DateLayout),
			Month:           now.Format(MonthLayout),
			Year:            now.Format(YearLayout),
		}
		id := uuid.NewString()
		item.ID = id
		if err := store.Write(ctx, config.ColRevenue, id, item); err != nil {
			logger.L().Errorf("revenue: failed to record line %s of order %s: %v", line.ProductID, order.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("revenue: %d of %d lines failed for order %s", failed, len(order.Items), order.ID)
	}
	return nil
}

// MigrationResult reports a best-effort batch outcome. Success and Errors
// count independently; the batch never aborts on a single bad order.
type MigrationResult struct {
	Success int `json:"success"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// MigrateDeliveredOrders backfills revenue items for orders already in a
// delivered or completed state. Orders that already have revenue recorded
// are skipped so the migration can be re-run safely.
func MigrateDeliveredOrders(ctx context.Context, store realtime.Store, now time.Time) (MigrationResult, error) {
	var result MigrationResult

	orders, err := store.Get(ctx, config.ColOrders)
	if err != nil {
		return result, err
	}
	existing, err := store.Get(ctx, config.ColRevenue)
	if err != nil {
		return result, err
	}

	recorded := map[string]struct{}{}
	for id, raw := range existing {
		var item models.RevenueItem
		if err := bson.Unmarshal(raw, &item); err != nil {
			logger.L().Warnf("revenue: malformed revenue item %s ignored during migration", id)
			continue
		}
		recorded[item.OrderID] = struct{}{}
	}

	for id, raw := range orders {
		var order models.Order
		if err := bson.Unmarshal(raw, &order); err != nil {
			logger.L().Warnf("revenue: skipping malformed order %s: %v", id, err)
			result.Errors++
			continue
		}
		order.ID = id
		if !models.IsRevenueStatus(order.Status) {
			continue
		}
		if _, done := recorded[order.ID]; done {
			result.Skipped++
			continue
		}

		completedAt := order.UpdatedAt
		if completedAt.IsZero() {
			completedAt = now
		}
		if err := RecordCompletedOrder(ctx, store, order, order.UserInfo, completedAt); err != nil {
			logger.L().Errorf("revenue: migration failed for order %s: %v", order.ID, err)
			result.Errors++
			continue
		}
		result.Success++
	}
	return result, nil
}
