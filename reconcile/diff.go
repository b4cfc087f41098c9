package reconcile

import (
	"sort"

	"glowstore/backend/models"
)

// Diff reports every variant whose stock differs between the two branches.
// Variants are matched by position; indexes present in only one branch are
// not reported, since there is nothing to compare them against. The report
// is informational only: no write reconciles the branches automatically.
func Diff(products map[string]models.StoreProduct, inventory map[string]models.InventoryProduct) []models.StockDifference {
	diffs := []models.StockDifference{}

	for id, sp := range products {
		inv, ok := inventory[id]
		if !ok {
			continue
		}
		for i, sv := range sp.Variants {
			if i >= len(inv.Variants) {
				break
			}
			iv := inv.Variants[i]
			if sv.StockQty == iv.StockQty {
				continue
			}
			diffs = append(diffs, models.StockDifference{
				ProductID:      id,
				ProductName:    fallback(sp.Name, inv.Name),
				VariantName:    fallback(sv.Size, iv.Name),
				InventoryStock: iv.StockQty,
				ProductsStock:  sv.StockQty,
				Difference:     sv.StockQty - iv.StockQty,
			})
		}
	}

	sort.Slice(diffs, func(i, j int) bool {
		if diffs[i].ProductID == diffs[j].ProductID {
			return diffs[i].VariantName < diffs[j].VariantName
		}
		return diffs[i].ProductID < diffs[j].ProductID
	})
	return diffs
}
