// Package lowstock flags product variants whose stock has fallen below a
// threshold. It operates on the merged product view, so it sees the stock
// counts of the authoritative products branch.
package lowstock

import "glowstore/backend/models"

// DefaultThreshold is used when no explicit threshold is configured.
const DefaultThreshold = 10

// Alert is one variant that needs restocking attention.
type Alert struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	VariantID   string `json:"variantId"`
	VariantName string `json:"variantName"`
	StockQty    int    `json:"stockQty"`
}

// Report separates variants that are running low from those already sold
// out. The two lists never overlap: zero stock is out of stock, not low.
type Report struct {
	Threshold  int     `json:"threshold"`
	LowStock   []Alert `json:"lowStock"`
	OutOfStock []Alert `json:"outOfStock"`
}

// Scan walks every variant of every product. A variant is low on stock
// when 0 < qty < threshold; a quantity equal to the threshold is healthy.
// A non-positive threshold falls back to DefaultThreshold.
func Scan(products []models.Product, threshold int) Report {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	report := Report{
		Threshold:  threshold,
		LowStock:   []Alert{},
		OutOfStock: []Alert{},
	}

	for _, p := range products {
		for _, v := range p.Variants {
			alert := Alert{
				ProductID:   p.ID,
				ProductName: p.Name,
				VariantID:   v.ID,
				VariantName: v.Name,
				StockQty:    v.StockQty,
			}
			switch {
			case v.StockQty == 0:
				report.OutOfStock = append(report.OutOfStock, alert)
			case v.StockQty > 0 && v.StockQty < threshold:
				report.LowStock = append(report.LowStock, alert)
			}
		}
	}
	return report
}
