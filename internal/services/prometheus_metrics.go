package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	expensesCreatedTotal        prometheus.Counter
	expensesUpdatedTotal        prometheus.Counter
	expensesDeletedTotal        prometheus.Counter
	normalizationsTotal         *prometheus.CounterVec
	categoriesAutoCreatedTotal  prometheus.Counter
	thresholdNotificationsTotal prometheus.Counter
	recorderDuration            *prometheus.HistogramVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		expensesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expenses_created_total",
				Help: "Total number of expenses recorded",
			},
		),
		expensesUpdatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expenses_updated_total",
				Help: "Total number of expense updates",
			},
		),
		expensesDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expenses_deleted_total",
				Help: "Total number of expenses deleted",
			},
		),
		normalizationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_normalizations_total",
				Help: "Total number of currency conversions performed",
			},
			[]string{"from", "to"},
		),
		categoriesAutoCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "categories_auto_created_total",
				Help: "Total number of categories created on first use",
			},
		),
		thresholdNotificationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "threshold_notifications_total",
				Help: "Total number of category threshold notifications produced",
			},
		),
		recorderDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "expense_recorder_duration_milliseconds",
				Help:    "Expense recorder operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
	}
}

func (m *PrometheusMetrics) RecordExpensesCreated(count int) {
	m.expensesCreatedTotal.Add(float64(count))
}

func (m *PrometheusMetrics) RecordExpenseUpdated() {
	m.expensesUpdatedTotal.Inc()
}

func (m *PrometheusMetrics) RecordExpensesDeleted(count int) {
	m.expensesDeletedTotal.Add(float64(count))
}

func (m *PrometheusMetrics) RecordNormalization(from, to string) {
	m.normalizationsTotal.WithLabelValues(from, to).Inc()
}

func (m *PrometheusMetrics) RecordCategoryAutoCreated() {
	m.categoriesAutoCreatedTotal.Inc()
}

func (m *PrometheusMetrics) RecordThresholdNotification() {
	m.thresholdNotificationsTotal.Inc()
}

func (m *PrometheusMetrics) ObserveRecorderDuration(operation string, milliseconds float64) {
	m.recorderDuration.WithLabelValues(operation).Observe(milliseconds)
}
