package main

import (
	"fmt"
	"io"
	"os"

	"github.com/arena-sim/arena-robots/internal/common"
	"github.com/arena-sim/arena-robots/internal/config"
	"github.com/arena-sim/arena-robots/internal/logger"
	"github.com/arena-sim/arena-robots/internal/metrics"
	pkgconfig "github.com/arena-sim/arena-robots/pkg/config"
	"github.com/arena-sim/arena-robots/pkg/robot"
	"github.com/arena-sim/arena-robots/pkg/setup"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs the command line and always flushes the logger and the
// metrics summary, including when a command fails.
func execute(args []string, stdout, stderr io.Writer) error {
	rootCmd, a := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	defer a.finish(stderr)
	return rootCmd.Execute()
}

// app holds what every subcommand needs once the configuration is loaded.
type app struct {
	configPath   string
	root         string
	printMetrics bool

	cfg    *pkgconfig.Config
	log    *logger.Logger
	robots *robot.Tree
	setups *setup.Tree
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "robots",
		Short: "Inspect and validate robot model and setup configuration",
		Long: `robots reads the robot assets of the simulation: per-robot model parameters,
control configuration and mappings, and the setup files listing which robots
to instantiate.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to configuration file (.yaml, .json or .toml)")
	rootCmd.PersistentFlags().StringVarP(&a.root, "root", "r", "", "asset root holding robots/ and config/setup/ (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&a.printMetrics, "print-metrics", false, "print load counters to stderr when done")

	rootCmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newSetupCmd(a),
		newValidateCmd(a),
		newSchemaCmd(a),
	)

	return rootCmd, a
}

func (a *app) finish(w io.Writer) {
	if a.log != nil {
		_ = a.log.Close()
	}
	if a.printMetrics {
		if err := metrics.WriteSummary(w); err != nil {
			fmt.Fprintf(w, "failed to write metrics: %v\n", err)
		}
	}
}

func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg := pkgconfig.Default()
	if a.configPath != "" {
		loaded, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if a.root != "" {
		cfg.Root = a.root
	}
	a.cfg = cfg

	a.log = logger.NewComponentLoggerFromConfig(common.ComponentCLI, cfg.Logging)
	a.robots = robot.NewTree(cfg.Root, logger.NewComponentLoggerFromConfig(common.ComponentRobotProvider, cfg.Logging))
	a.setups = setup.NewTree(cfg.Root, logger.NewComponentLoggerFromConfig(common.ComponentSetupProvider, cfg.Logging))

	a.log.Debugw("configuration loaded", "root", cfg.Root, "config", a.configPath)
	return nil
}
