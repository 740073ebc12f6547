package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_total",
		Help: "Total number of committed sales",
	})

	SalesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_failed_total",
		Help: "Total number of rejected sales",
	}, []string{"reason"})

	UnitsSoldTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_units_sold_total",
		Help: "Total number of units sold",
	})

	StockReceiptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_stock_receipts_total",
		Help: "Total number of stock entries recorded",
	})

	UnitsReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_units_received_total",
		Help: "Total number of units received into stock",
	})

	CheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkouts_total",
		Help: "Total number of cart checkouts by outcome",
	}, []string{"outcome"})

	CartAdjustmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_cart_adjustments_total",
		Help: "Total number of cart lines clamped or dropped by reconciliation",
	})

	BackupOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_backup_operations_total",
		Help: "Total number of snapshot and restore operations",
	}, []string{"operation", "result"})

	SaleLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_sale_latency_seconds",
		Help:    "Latency of the single-line sale transaction",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
