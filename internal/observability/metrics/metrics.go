package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                           sync.Once
	metricsRouter                  *chi.Mux
	dbLatency                      *prometheus.HistogramVec
	tokenClientLatency             *prometheus.HistogramVec
	operationLatency               *prometheus.HistogramVec
	clientRequestDurationHistogram *prometheus.HistogramVec
	queueSendErrorCounter          prometheus.Counter
	claimSettlementFailureCounter  prometheus.Counter
	stakeRefundFailureCounter      prometheus.Counter
	poolsCreatedCounter            prometheus.Counter
	stakesCreatedCounter           prometheus.Counter
	claimsProcessedCounter         prometheus.Counter
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_latency_seconds",
			Help:    "Histogram of database call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	tokenClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "token_client_latency_seconds",
			Help:    "Histogram of token custody client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	operationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staking_operation_duration_seconds",
			Help:    "Staking engine operation duration in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	claimSettlementFailureCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "claim_settlement_failure_count",
			Help: "The total number of claim baseline persists that failed after payout",
		},
	)

	stakeRefundFailureCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stake_refund_failure_count",
			Help: "The total number of deposit refunds that failed after a stake persist failure",
		},
	)

	poolsCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stake_pools_created_count",
			Help: "The total number of stake pools created",
		},
	)

	stakesCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stakes_created_count",
			Help: "The total number of stakes created",
		},
	)

	claimsProcessedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "claims_processed_count",
			Help: "The total number of reward claims paid out",
		},
	)

	prometheus.MustRegister(
		dbLatency,
		tokenClientLatency,
		operationLatency,
		clientRequestDurationHistogram,
		queueSendErrorCounter,
		claimSettlementFailureCounter,
		stakeRefundFailureCounter,
		poolsCreatedCounter,
		stakesCreatedCounter,
		claimsProcessedCounter,
	)
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	if dbLatency == nil {
		return
	}

	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordTokenClientLatency(d time.Duration, method string, failure bool) {
	if tokenClientLatency == nil {
		return
	}

	status := Success
	if failure {
		status = Error
	}

	tokenClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordOperationLatency(d time.Duration, operation string, failure bool) {
	if operationLatency == nil {
		return
	}

	status := Success
	if failure {
		status = Error
	}

	operationLatency.WithLabelValues(operation, status.String()).Observe(d.Seconds())
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		if clientRequestDurationHistogram == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	if queueSendErrorCounter == nil {
		return
	}
	queueSendErrorCounter.Inc()
}

func IncClaimSettlementFailures() {
	if claimSettlementFailureCounter == nil {
		return
	}
	claimSettlementFailureCounter.Inc()
}

func IncStakeRefundFailures() {
	if stakeRefundFailureCounter == nil {
		return
	}
	stakeRefundFailureCounter.Inc()
}

func IncPoolsCreated() {
	if poolsCreatedCounter == nil {
		return
	}
	poolsCreatedCounter.Inc()
}

func IncStakesCreated() {
	if stakesCreatedCounter == nil {
		return
	}
	stakesCreatedCounter.Inc()
}

func IncClaimsProcessed() {
	if claimsProcessedCounter == nil {
		return
	}
	claimsProcessedCounter.Inc()
}
