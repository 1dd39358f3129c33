package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by route template, method and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "life_record_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration measures handler latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "life_record_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"route", "method"},
	)

	// LoginAttempts counts logins by outcome: success, failure, rate_limited.
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "life_record_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	// CheckinSaves counts check-in record upserts by resulting status (0 or 1).
	CheckinSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "life_record_checkin_saves_total",
			Help: "Total number of check-in record saves",
		},
		[]string{"status"},
	)

	// WeightRecordsCreated counts successfully added weight records.
	WeightRecordsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "life_record_weight_records_created_total",
			Help: "Total number of weight records created",
		},
	)

	// WeightTargetSets counts target replacements by outcome: success, error.
	WeightTargetSets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "life_record_weight_target_sets_total",
			Help: "Total number of weight target set operations",
		},
		[]string{"outcome"},
	)

	// ImagesUploaded counts stored uploads.
	ImagesUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "life_record_images_uploaded_total",
			Help: "Total number of uploaded images",
		},
	)
)
