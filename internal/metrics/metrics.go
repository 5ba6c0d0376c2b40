package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests   *prometheus.CounterVec
	LatencyMS  *prometheus.HistogramVec
	CartOps    *prometheus.CounterVec
	OrdersMade prometheus.Counter
}

func New() *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marketplace",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "cart_items_toggled_total",
		Help:      "Cart line mutations by outcome.",
	}, []string{"outcome"})
	ordersMade := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "orders_created_total",
		Help:      "Orders created through checkout.",
	})

	prometheus.MustRegister(requests, latency, cartOps, ordersMade)
	return &Metrics{
		Requests:   requests,
		LatencyMS:  latency,
		CartOps:    cartOps,
		OrdersMade: ordersMade,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
