package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/irrelephant-io/essentia/internal/config"
	"github.com/irrelephant-io/essentia/internal/infrastructure/monitoring/logging"
	"github.com/irrelephant-io/essentia/internal/infrastructure/monitoring/prometheus"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// serveMetricsOptions holds the serve-metrics subcommand's own flags.
type serveMetricsOptions struct {
	scenarioPath string
	addr         string
}

// engineMetricsObserver adapts the flask's StepObserver callbacks onto the
// exporter's per-reaction and per-product-kind counters, alongside the
// per-step gauges RecordStep maintains.
type engineMetricsObserver struct {
	metrics *prometheus.EngineMetrics
}

func (o engineMetricsObserver) ReactionFired(reaction string, products int) {
	prometheus.RecordReactionFired(o.metrics, reaction)
}

func (o engineMetricsObserver) ProductApplied(kind string) {
	prometheus.RecordProductApplied(o.metrics, kind)
}

// NewServeMetricsCmd builds the "serve-metrics" subcommand: run a scenario
// continuously (looping once it reaches its tick count) while exposing its
// running EngineMetrics on a /metrics endpoint, per the demo CLI's
// operability surface.
func NewServeMetricsCmd() *cobra.Command {
	opts := &serveMetricsOptions{}

	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "run a scenario on a loop while exposing Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveMetrics(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.scenarioPath, "scenario", "s", "", "scenario YAML path (required)")
	flags.StringVar(&opts.addr, "addr", "", "address to serve /metrics on (default: :<metrics.port> from config)")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func serveMetrics(cmd *cobra.Command, opts *serveMetricsOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	logger := cliCtx.Logger
	cfg := cliCtx.Config

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: cfg.Metrics.Namespace,
		Subsystem: cfg.Metrics.Subsystem,
	}, logger)
	if err != nil {
		return fmt.Errorf("serve-metrics: failed to build metrics collector: %w", err)
	}
	metrics := prometheus.NewEngineMetrics(collector)

	addr := opts.addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Metrics.Port)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("serving metrics", logging.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped unexpectedly", logging.Err(err))
		}
	}()

	go runLoopForMetrics(ctx, opts.scenarioPath, metrics, logger)

	<-ctx.Done()
	logger.Info("shutting down metrics server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// runLoopForMetrics drives the scenario to completion and then reloads it
// from disk, repeating forever until ctx is canceled, recording step
// metrics via the generic MetricsCollector as it goes.
func runLoopForMetrics(ctx context.Context, scenarioPath string, metrics *prometheus.EngineMetrics, logger logging.Logger) {
	for {
		if ctx.Err() != nil {
			return
		}

		scenario, err := config.LoadScenario(scenarioPath)
		if err != nil {
			logger.Error("failed to load scenario", logging.Err(err))
			return
		}

		built, err := buildMixture(scenario, logger, engineMetricsObserver{metrics: metrics})
		if err != nil {
			logger.Error("failed to build mixture", logging.Err(err))
			return
		}

		delta := physics.NewTimeSpan(scenario.Engine.TickBatchSize)
		delay := time.Duration(scenario.Engine.TickDurationMilliseconds) * time.Millisecond

		for i := uint32(0); i < scenario.Ticks; i++ {
			if ctx.Err() != nil {
				return
			}

			start := time.Now()
			err := built.mixture.Simulate(delta)
			prometheus.RecordStep(
				metrics,
				time.Since(start),
				built.mixture.IsInEquilibrium(),
				built.mixture.Count(),
				built.mixture.Environment().Temperature.MilliKelvin,
				int64(built.mixture.HeatCapacity().Value),
			)
			if err != nil {
				prometheus.RecordStepError(metrics, "SIMULATE_ERROR")
				logger.Error("tick failed",
					logging.Err(err),
					logging.Tick(uint64(i)),
					logging.SubstanceCount(built.mixture.Count()),
					logging.TemperatureMilliKelvin(built.mixture.Environment().Temperature.MilliKelvin),
				)
				return
			}

			if delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(delay):
				}
			}
		}
	}
}
