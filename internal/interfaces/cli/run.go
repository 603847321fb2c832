package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/irrelephant-io/essentia/internal/config"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/internal/infrastructure/monitoring/logging"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// runOptions holds the run subcommand's own flags.
type runOptions struct {
	scenarioPath string
	ticks        uint32
	noDelay      bool
	watch        bool
}

// runSummary is the JSON/text payload PrintResult emits once a run
// completes. RunID gives an operator a stable handle to correlate a run's
// console output with anything logged alongside it.
type runSummary struct {
	RunID               string `json:"run_id"`
	Scenario            string `json:"scenario"`
	TicksRun            uint32 `json:"ticks_run"`
	FinalSubstanceCount int    `json:"final_substance_count"`
	FinalTemperatureMK  int64  `json:"final_temperature_millikelvin"`
	ReachedEquilibrium  bool   `json:"reached_equilibrium"`
}

// NewRunCmd builds the "run" subcommand: load a scenario, drive it for its
// configured tick count (or forever under --watch), and report each tick.
func NewRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and report the mixture after each tick",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.scenarioPath, "scenario", "s", "", "scenario YAML path (required)")
	flags.Uint32VarP(&opts.ticks, "ticks", "t", 0, "override the scenario's tick count (0 keeps the scenario's own value)")
	flags.BoolVar(&opts.noDelay, "no-delay", false, "run every tick back-to-back, ignoring tick_duration_milliseconds")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "reload and restart the scenario whenever its file changes")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runScenario(cmd *cobra.Command, opts *runOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	logger := cliCtx.Logger

	if opts.watch {
		return watchAndRun(cmd, opts, logger)
	}

	scenario, err := config.LoadScenario(opts.scenarioPath)
	if err != nil {
		return err
	}
	if opts.ticks > 0 {
		scenario.Ticks = opts.ticks
	}

	return runOnce(cmd, scenario, opts, logger)
}

// watchAndRun re-runs the scenario from scratch every time its file changes
// on disk. Each reload fully replaces the in-flight mixture; there is no
// attempt to carry state across a scenario edit.
func watchAndRun(cmd *cobra.Command, opts *runOptions, logger logging.Logger) error {
	scenario, err := config.LoadScenario(opts.scenarioPath)
	if err != nil {
		return err
	}
	if opts.ticks > 0 {
		scenario.Ticks = opts.ticks
	}

	reload := make(chan *config.ScenarioConfig, 1)
	if err := config.WatchScenario(opts.scenarioPath, func(s *config.ScenarioConfig) {
		if opts.ticks > 0 {
			s.Ticks = opts.ticks
		}
		reload <- s
	}); err != nil {
		return err
	}

	current := scenario
	for {
		if err := runOnce(cmd, current, opts, logger); err != nil {
			logger.Error("scenario run failed", logging.Err(err))
		}

		logger.Info("watching for scenario changes", logging.String("path", opts.scenarioPath))
		current = <-reload
		fmt.Fprintln(cmd.OutOrStdout(), "\n--- scenario file changed, restarting ---")
	}
}

func runOnce(cmd *cobra.Command, scenario *config.ScenarioConfig, opts *runOptions, logger logging.Logger) error {
	built, err := buildMixture(scenario, logger, nil)
	if err != nil {
		return err
	}

	delta := physics.NewTimeSpan(scenario.Engine.TickBatchSize)
	delay := time.Duration(scenario.Engine.TickDurationMilliseconds) * time.Millisecond

	var ticksRun uint32
	for i := uint32(0); i < scenario.Ticks; i++ {
		if err := built.mixture.Simulate(delta); err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		ticksRun++

		printTickReport(cmd, built, i+1)

		if !opts.noDelay && delay > 0 && i+1 < scenario.Ticks {
			time.Sleep(delay)
		}
	}

	summary := runSummary{
		RunID:               uuid.New().String(),
		Scenario:            scenario.Name,
		TicksRun:            ticksRun,
		FinalSubstanceCount: built.mixture.Count(),
		FinalTemperatureMK:  built.mixture.Environment().Temperature.MilliKelvin,
		ReachedEquilibrium:  built.mixture.IsInEquilibrium(),
	}

	fmt.Fprintln(cmd.OutOrStdout())
	return PrintResult(cmd, summary)
}

// printTickReport renders the flask's live substance table after one tick,
// plus the environment's temperature and clock.
func printTickReport(cmd *cobra.Command, built *builtMixture, tick uint32) {
	env := built.mixture.Environment()
	fmt.Fprintf(cmd.OutOrStdout(), "tick %d — t=%d temperature=%dmK equilibrium=%t\n",
		tick, env.Time.Ticks, env.Temperature.MilliKelvin, built.mixture.IsInEquilibrium())

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Essence", "Form", "Kind", "Quantity (mmol)", "Solutes"})
	table.SetBorder(true)

	for _, s := range built.mixture.IterAll() {
		kind := "free"
		solutes := "-"
		if s.IsSolution() {
			kind = "solution"
			solutes = formatSolutes(built, s)
		}
		table.Append([]string{
			built.essenceName(s.Data.EssenceId),
			built.formName(s.Data.FormId),
			kind,
			fmt.Sprintf("%d", s.Quantity().MilliMoles),
			solutes,
		})
	}

	table.Render()
}

// formatSolutes renders a Solution's dissolved cargo as "name:mmol" pairs,
// sorted by name so the table's output is deterministic across runs.
func formatSolutes(built *builtMixture, s substance.Substance) string {
	if len(s.Solutes) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(s.Solutes))
	for essenceId, qty := range s.Solutes {
		parts = append(parts, fmt.Sprintf("%s:%d", built.essenceName(essenceId), qty.MilliMoles))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
