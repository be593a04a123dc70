// Package metrics exposes Prometheus counters for both services.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusmate",
		Name:      "http_requests_total",
		Help:      "HTTP requests by service, route and status code.",
	}, []string{"service", "route", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campusmate",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by service and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "route"})

	Recommended = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusmate",
		Name:      "recommended_colleges_total",
		Help:      "Colleges returned by /recommend, by band.",
	}, []string{"band"})

	CutoffResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusmate",
		Name:      "cutoff_resolutions_total",
		Help:      "Cutoff lookups by source (historical or estimated).",
	}, []string{"source"})

	Intents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusmate",
		Name:      "chat_intents_total",
		Help:      "Chat messages by classified intent.",
	}, []string{"intent"})

	StoreRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "campusmate",
		Name:      "store_records",
		Help:      "Historical records loaded at startup.",
	}, []string{"service"})
)

func Handler() http.Handler { return promhttp.Handler() }
