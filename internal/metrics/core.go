package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	modelCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Model calls by final outcome after retries",
		},
		[]string{"provider", "model", "outcome"},
	)

	modelCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_call_duration_seconds",
			Help:      "Model call duration including retries",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"provider", "model"},
	)

	modelRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_retries_total",
			Help:      "Model call retries after rate limiting",
		},
		[]string{"provider", "model"},
	)

	modelTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_tokens_total",
			Help:      "Tokens consumed by model calls",
		},
		[]string{"provider", "model", "type"}, // input / output / thinking
	)

	modelCostUSD = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_cost_usd_total",
			Help:      "Estimated model spend in USD",
		},
		[]string{"provider", "model"},
	)

	slicesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fanout_slices_total",
			Help:      "Fan-out slices by outcome",
		},
		[]string{"domain", "outcome"}, // ok / empty / failed
	)

	verificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Verification results by source of the map reference",
		},
		[]string{"source"}, // grounding / places / fallback / failed
	)
)

func init() {
	prometheus.MustRegister(
		modelCallsTotal,
		modelCallDuration,
		modelRetriesTotal,
		modelTokensTotal,
		modelCostUSD,
		slicesTotal,
		verificationsTotal,
	)
}

// ObserveModelCall records one executed call.
func ObserveModelCall(provider, model, outcome string, d time.Duration) {
	modelCallsTotal.WithLabelValues(provider, model, outcome).Inc()
	modelCallDuration.WithLabelValues(provider, model).Observe(d.Seconds())
}

// ObserveRetry records one retry.
func ObserveRetry(provider, model string) {
	modelRetriesTotal.WithLabelValues(provider, model).Inc()
}

// ObserveUsage records token usage and cost for one call.
func ObserveUsage(provider, model string, input, output, thinking int64, usd float64) {
	modelTokensTotal.WithLabelValues(provider, model, "input").Add(float64(input))
	modelTokensTotal.WithLabelValues(provider, model, "output").Add(float64(output))
	modelTokensTotal.WithLabelValues(provider, model, "thinking").Add(float64(thinking))
	modelCostUSD.WithLabelValues(provider, model).Add(usd)
}

// ObserveSlice records one fan-out slice outcome.
func ObserveSlice(domain, outcome string) {
	slicesTotal.WithLabelValues(domain, outcome).Inc()
}

// ObserveVerification records one verification result.
func ObserveVerification(source string) {
	verificationsTotal.WithLabelValues(source).Inc()
}
