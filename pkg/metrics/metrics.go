package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the registry served on /api/metrics
	Registry = prometheus.NewRegistry()

	// Histogram buckets for API calls from a few milliseconds up to the persist timeout.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21}

	// HTTP Metrics
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Lead store client metrics (postgres, supabase, log)
	StoreRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_client_operation_duration_seconds",
			Help:    "Lead store client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StoreRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_client_operation_total",
			Help: "Total number of lead store client operations",
		},
		[]string{"operation", "status"},
	)

	// Object storage metrics (resume uploads)
	ObjectStorageRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	ObjectStorageRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	FormSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edushetra_form_submissions_total",
			Help: "Total number of lead form submissions by outcome",
		},
		[]string{"form", "status"},
	)

	FormInits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edushetra_form_inits_total",
			Help: "Total number of form initialisations, split by whether attribution was present",
		},
		[]string{"form", "attributed"},
	)

	LevelTestCompletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edushetra_level_test_completions_total",
			Help: "Total number of completed level tests by resulting level",
		},
		[]string{"level"},
	)

	ResumeUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edushetra_resume_uploads_total",
			Help: "Total number of tutor resume uploads",
		},
		[]string{"status"},
	)

	SubmissionInstances = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "edushetra_submission_instances",
			Help: "Number of live form instances tracked by the submission registry",
		},
	)

	// Infrastructure Metrics
	GoRoutines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

func init() {
	Registry.MustRegister(
		HTTPRequestDuration,
		HTTPRequestTotal,
		ActiveRequests,
		StoreRequestDuration,
		StoreRequestTotal,
		ObjectStorageRequestDuration,
		ObjectStorageRequestTotal,
		FormSubmissions,
		FormInits,
		LevelTestCompletions,
		ResumeUploads,
		SubmissionInstances,
		GoRoutines,
		HeapAlloc,
	)
}

// Init adds the Go runtime and process collectors labelled with the service name
func Init(serviceName string) {
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"service_name": serviceName}, Registry)
	wrapped.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordInfrastructureMetrics collects infrastructure metrics until ctx is done
func RecordInfrastructureMetrics(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
