package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "journal"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	checkDuration prom.Histogram
	stageResults  *prom.CounterVec
	checkOutcome  *prom.CounterVec
	problems      *prom.CounterVec
	docs          prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual check stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		checkDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Total check duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		checkOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "check_outcomes_total",
			Help:      "Check outcomes by final status",
		}, []string{"outcome"}),
		problems: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "problems_total",
			Help:      "Broken references found, by class and policy",
		}, []string{"class", "policy"}),
		docs: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "docs",
			Help:      "Number of documents in the last scanned tree",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.checkDuration, pr.stageResults, pr.checkOutcome, pr.problems, pr.docs)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveCheckDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.checkDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncCheckOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.checkOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddProblems(class, policy string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.problems.WithLabelValues(class, policy).Add(float64(n))
}

func (p *PrometheusRecorder) SetDocs(n int) {
	if p == nil {
		return
	}
	p.docs.Set(float64(n))
}
