package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubscriptionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "milkrun_subscriptions_created_total",
		Help: "Total number of subscriptions created or replaced.",
	})

	DeliveriesGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "milkrun_deliveries_generated_total",
		Help: "Total number of pending deliveries inserted by the planner.",
	})

	DeliveriesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "milkrun_deliveries_skipped_total",
		Help: "Total number of deliveries skipped by customers.",
	})

	DeliveryStatusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milkrun_delivery_status_updates_total",
		Help: "Delivery status changes made from the back office.",
	},
		[]string{"status"},
	)

	CheckoutQuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milkrun_checkout_quotes_total",
		Help: "Checkout quotes computed, by delivery option kind.",
	},
		[]string{"kind"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milkrun_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	SnapshotCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "milkrun_snapshot_cache_items",
		Help: "Current number of subscription snapshots held in memory.",
	})

	OutboxPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milkrun_outbox_published_total",
		Help: "Outbox tasks handed to Kafka, by result.",
	},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milkrun_http_requests_total",
		Help: "API requests served, by route and status code.",
	},
		[]string{"route", "code"},
	)

	AuditEntriesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "milkrun_audit_entries_dropped_total",
		Help: "Audit entries that could not be forwarded to Kafka.",
	})
)
