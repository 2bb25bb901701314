package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gotrip_requests_total",
			Help: "Total number of handled requests by path and status code",
		},
		[]string{"path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gotrip_request_duration_seconds",
			Help:    "Request handling time by path",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"path"},
	)
	TableSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gotrip_table_entries",
		Help:    "Number of entries of computed cost tables",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
	TripComponents = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gotrip_trip_components",
		Help:    "Number of trips returned per trip request",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	})
)
