// Package metrics provides Prometheus metrics collection for the fulfillment service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// OptimizationsTotal tracks order optimizations by outcome.
	OptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_optimizations_total",
			Help: "Total number of order optimizations",
		},
		[]string{"status"},
	)

	// OptimizationDuration tracks order optimization duration. Buckets lean
	// high because every optimization fans out to the shipping provider.
	OptimizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_optimization_duration_seconds",
			Help:    "Order optimization duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
	)

	// OptimizationShipments tracks how many shipments the chosen plan has.
	OptimizationShipments = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_optimization_shipments",
			Help:    "Shipment count of chosen fulfillment plans",
			Buckets: []float64{1, 2, 3, 5, 8, 13},
		},
	)

	// ProviderRequestsTotal tracks shipping provider calls by operation and result.
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipping_provider_requests_total",
			Help: "Total number of shipping provider requests",
		},
		[]string{"operation", "result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordOptimization records metrics for one order optimization.
func RecordOptimization(duration time.Duration, status string, shipments int) {
	OptimizationDuration.Observe(duration.Seconds())
	OptimizationsTotal.WithLabelValues(status).Inc()
	if shipments > 0 {
		OptimizationShipments.Observe(float64(shipments))
	}
}

// RecordProviderRequest records one shipping provider call.
func RecordProviderRequest(operation, result string) {
	ProviderRequestsTotal.WithLabelValues(operation, result).Inc()
}
