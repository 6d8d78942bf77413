package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	CredentialsIssued *prometheus.CounterVec
	ProofBuildFailed  *prometheus.CounterVec
	BundlesAssembled  prometheus.Counter
	EmptyBundles      prometheus.Counter
	Verifications     *prometheus.CounterVec
	LedgerFallbacks   prometheus.Counter
	ProofBuildLatency *prometheus.HistogramVec
	EndpointLatency   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		CredentialsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "selo_credentials_issued_total",
			Help: "Total number of field credentials issued, labeled by field",
		}, []string{"field"}),
		ProofBuildFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "selo_proof_build_failed_total",
			Help: "Total number of failed proof builds, labeled by field and error code",
		}, []string{"field", "code"}),
		BundlesAssembled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "selo_bundles_assembled_total",
			Help: "Total number of credential bundles assembled",
		}),
		EmptyBundles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "selo_empty_bundles_total",
			Help: "Total number of generation requests where every field failed",
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "selo_verifications_total",
			Help: "Total number of credential verifications, labeled by verdict",
		}, []string{"verdict"}),
		LedgerFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "selo_ledger_fallbacks_total",
			Help: "Total number of ledger registrations skipped because the breaker was open",
		}),
		ProofBuildLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "selo_proof_build_latency_seconds",
			Help:    "Latency of external proof generation in seconds, labeled by circuit",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"circuit"}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "selo_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}
