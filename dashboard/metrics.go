package dashboard

import "github.com/prometheus/client_golang/prometheus"

var (
	RecomputeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_recompute_duration_seconds",
			Help:    "Duration of full dashboard recomputes",
			Buckets: prometheus.DefBuckets,
		},
	)

	TotalRevenue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_total_revenue",
			Help: "Total revenue across all revenue items, in minor units",
		},
	)

	ProductCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_product_count",
			Help: "Number of merged products",
		},
	)

	LowStockCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_low_stock_count",
			Help: "Number of variants below the stock threshold",
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(RecomputeDuration, TotalRevenue, ProductCount, LowStockCount)
}
