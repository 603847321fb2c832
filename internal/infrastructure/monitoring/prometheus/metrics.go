package prometheus

import "time"

// EngineMetrics holds every metric the simulation engine emits: one struct
// field per named metric, wired through the generic MetricsCollector
// interface. The surface covers steps taken, reactions fired per kind, the
// flask's live substance count and temperature, and whether the last step
// reached equilibrium.
type EngineMetrics struct {
	StepsTotal           Counter
	StepDuration         Histogram
	ReactionsFiredTotal  CounterVec
	ProductsAppliedTotal CounterVec
	EquilibriumReached   Counter
	SubstanceCount       Gauge
	Temperature          Gauge
	HeatCapacity         Gauge
	StepErrorsTotal      CounterVec
}

// DefaultStepDurationBuckets covers a single Simulate call, which is pure
// in-memory arithmetic over at most a few thousand substances and should
// resolve in well under a second.
var DefaultStepDurationBuckets = []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05}

// NewEngineMetrics registers every engine metric against collector and
// returns the populated struct. Label-less vecs (StepsTotal,
// EquilibriumReached, gauges) are resolved to their single time series
// immediately so callers never have to repeat WithLabelValues().
func NewEngineMetrics(collector MetricsCollector) *EngineMetrics {
	stepsTotal := collector.RegisterCounter("steps_total", "Simulation steps executed")
	equilibrium := collector.RegisterCounter("equilibrium_reached_total", "Steps whose fused product list was empty before mutation")
	substanceCount := collector.RegisterGauge("substance_count", "Live substances currently held in the flask")
	temperature := collector.RegisterGauge("temperature_millikelvin", "Flask temperature in milliKelvin")
	heatCapacity := collector.RegisterGauge("heat_capacity_millijoules_per_millikelvin", "Flask heat capacity cached for the last step")

	return &EngineMetrics{
		StepsTotal:           stepsTotal.WithLabelValues(),
		StepDuration:         collector.RegisterHistogram("step_duration_seconds", "Wall-clock time spent in one Simulate call", DefaultStepDurationBuckets).WithLabelValues(),
		ReactionsFiredTotal:  collector.RegisterCounter("reactions_fired_total", "Reaction.React calls that returned at least one product", "reaction"),
		ProductsAppliedTotal: collector.RegisterCounter("products_applied_total", "Fused products applied to the flask by kind", "kind"),
		EquilibriumReached:   equilibrium.WithLabelValues(),
		SubstanceCount:       substanceCount.WithLabelValues(),
		Temperature:          temperature.WithLabelValues(),
		HeatCapacity:         heatCapacity.WithLabelValues(),
		StepErrorsTotal:      collector.RegisterCounter("step_errors_total", "Simulate calls that returned an error", "code"),
	}
}

// RecordStep updates the per-step gauges and counters after a Simulate call
// completes successfully.
func RecordStep(metrics *EngineMetrics, duration time.Duration, reachedEquilibrium bool, substanceCount int, temperatureMilliKelvin, heatCapacity int64) {
	metrics.StepsTotal.Inc()
	metrics.StepDuration.Observe(duration.Seconds())
	metrics.SubstanceCount.Set(float64(substanceCount))
	metrics.Temperature.Set(float64(temperatureMilliKelvin))
	metrics.HeatCapacity.Set(float64(heatCapacity))
	if reachedEquilibrium {
		metrics.EquilibriumReached.Inc()
	}
}

// RecordStepError increments the step-errors counter for the given error
// code name (e.g. "SOLUBILITY_INVARIANT_BROKEN").
func RecordStepError(metrics *EngineMetrics, code string) {
	metrics.StepErrorsTotal.WithLabelValues(code).Inc()
}

// RecordReactionFired increments the per-reaction counter. label should be a
// stable, low-cardinality name for the reaction (its Go type name or a
// caller-assigned tag), never raw input data.
func RecordReactionFired(metrics *EngineMetrics, label string) {
	metrics.ReactionsFiredTotal.WithLabelValues(label).Inc()
}

// RecordProductApplied increments the per-kind applied-product counter.
func RecordProductApplied(metrics *EngineMetrics, kind string) {
	metrics.ProductsAppliedTotal.WithLabelValues(kind).Inc()
}
