package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "roster"

// Recorder holds the Prometheus collectors for strategy runs and evaluations.
// All methods are safe to call on a nil Recorder.
type Recorder struct {
	registry *prometheus.Registry

	runsTotal          *prometheus.CounterVec
	assignmentsCreated *prometheus.CounterVec
	assignmentsSkipped *prometheus.CounterVec
	runDuration        *prometheus.HistogramVec
	shortfalls         *prometheus.GaugeVec

	fairnessIndex      *prometheus.GaugeVec
	averageScore       *prometheus.GaugeVec
	outOfBounds        *prometheus.GaugeVec
	invalidAssignments *prometheus.GaugeVec
	overAssignedDays   prometheus.Gauge
}

// NewRecorder registers the roster collectors on a dedicated registry
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategy_runs_total",
		Help:      "Strategy runs by strategy and outcome status",
	}, []string{"strategy", "status"})

	assignmentsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_created_total",
		Help:      "Assignments written to the ledger",
	}, []string{"strategy"})

	assignmentsSkipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_skipped_total",
		Help:      "Produced assignments skipped because the ledger already held them",
	}, []string{"strategy"})

	runDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "strategy_run_duration_seconds",
		Help:      "Duration of strategy runs including ledger reads and writes",
		Buckets:   prometheus.DefBuckets,
	}, []string{"strategy"})

	shortfalls := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "quota_shortfall_employees",
		Help:      "Employees left below the minimum weekly days by the last run",
	}, []string{"strategy"})

	fairnessIndex := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "evaluation_fairness_index",
		Help:      "Population standard deviation of fairness scores from the last evaluation",
	}, []string{"strategy"})

	averageScore := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "evaluation_average_score",
		Help:      "Mean fairness score from the last evaluation",
	}, []string{"strategy"})

	outOfBounds := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "evaluation_out_of_bounds_employees",
		Help:      "Employees whose score is outside the fairness bounds",
	}, []string{"strategy"})

	invalidAssignments := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "evaluation_invalid_assignment_employees",
		Help:      "Employees whose weekly day count is outside the quota",
	}, []string{"strategy"})

	overAssignedDays := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "evaluation_over_assigned_workdays",
		Help:      "Workdays whose combined assignments across strategies exceed capacity",
	})

	registry.MustRegister(runsTotal, assignmentsCreated, assignmentsSkipped, runDuration, shortfalls,
		fairnessIndex, averageScore, outOfBounds, invalidAssignments, overAssignedDays)

	return &Recorder{
		registry:           registry,
		runsTotal:          runsTotal,
		assignmentsCreated: assignmentsCreated,
		assignmentsSkipped: assignmentsSkipped,
		runDuration:        runDuration,
		shortfalls:         shortfalls,
		fairnessIndex:      fairnessIndex,
		averageScore:       averageScore,
		outOfBounds:        outOfBounds,
		invalidAssignments: invalidAssignments,
		overAssignedDays:   overAssignedDays,
	}
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RunStats summarises one strategy run
type RunStats struct {
	Strategy   string
	Status     string
	Created    int
	Skipped    int
	Shortfalls int
	Duration   time.Duration
}

// ObserveRun records the result of one strategy run
func (r *Recorder) ObserveRun(stats RunStats) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues(stats.Strategy, stats.Status).Inc()
	r.assignmentsCreated.WithLabelValues(stats.Strategy).Add(float64(stats.Created))
	r.assignmentsSkipped.WithLabelValues(stats.Strategy).Add(float64(stats.Skipped))
	r.runDuration.WithLabelValues(stats.Strategy).Observe(stats.Duration.Seconds())
	r.shortfalls.WithLabelValues(stats.Strategy).Set(float64(stats.Shortfalls))
}

// StrategyEvaluation is the subset of an evaluation report exported per strategy
type StrategyEvaluation struct {
	Strategy           string
	FairnessIndex      float64
	AverageScore       float64
	OutOfBounds        int
	InvalidAssignments int
}

// ObserveEvaluation records the latest evaluation gauges
func (r *Recorder) ObserveEvaluation(strategies []StrategyEvaluation, overAssignedWorkdays int) {
	if r == nil {
		return
	}
	for _, s := range strategies {
		r.fairnessIndex.WithLabelValues(s.Strategy).Set(s.FairnessIndex)
		r.averageScore.WithLabelValues(s.Strategy).Set(s.AverageScore)
		r.outOfBounds.WithLabelValues(s.Strategy).Set(float64(s.OutOfBounds))
		r.invalidAssignments.WithLabelValues(s.Strategy).Set(float64(s.InvalidAssignments))
	}
	r.overAssignedDays.Set(float64(overAssignedWorkdays))
}

// WriteTextfile writes every collected metric in the text exposition format,
// suitable for the node_exporter textfile collector
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return fmt.Errorf("metrics recorder is not initialised")
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
