package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arena-sim/arena-robots/internal/common"
	"github.com/arena-sim/arena-robots/internal/logger"
	"github.com/arena-sim/arena-robots/internal/schema"
	"github.com/arena-sim/arena-robots/internal/validation"
	"github.com/arena-sim/arena-robots/pkg/setup"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List robots and setups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			robots, err := a.robots.Names()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Robots:")
			printNames(cmd, robots)

			setups, err := a.setups.Names()
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			fmt.Fprintln(out, "Setups:")
			printNames(cmd, setups)
			return nil
		},
	}
}

func printNames(cmd *cobra.Command, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "  (none)")
		return
	}
	for _, n := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", n)
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ROBOT",
		Short: "Show the model parameters and control configuration of a robot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.robots.Robot(args[0])
			if err != nil {
				return err
			}

			params, err := p.ModelParams()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "robot:       %s\n", p.Name())
			fmt.Fprintf(out, "directory:   %s\n", p.Dir())
			fmt.Fprintf(out, "base frame:  %s\n", params.BaseFrame())
			fmt.Fprintf(out, "odom frame:  %s\n", params.OdomFrame())
			fmt.Fprintf(out, "z offset:    %g\n", params.ZOffset())
			fmt.Fprintf(out, "mappings:    %s\n", p.MappingsPath())
			fmt.Fprintf(out, "parameters:  %s\n", strings.Join(params.Keys(), ", "))

			control, err := p.Control()
			switch {
			case errors.Is(err, fs.ErrNotExist):
				fmt.Fprintln(out, "control:     (none)")
			case err != nil:
				return err
			default:
				keys := make([]string, 0, len(control))
				for k := range control {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				fmt.Fprintf(out, "control:     %s\n", strings.Join(keys, ", "))
			}
			return nil
		},
	}
}

func newSetupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup NAME|FILE",
		Short: "Expand a setup file into one record per robot instance",
		Long: `Expand a setup file into one record per robot instance and print the records as YAML.
NAME is looked up in <root>/config/setup/NAME.yaml; a path ending in .yaml or .yml is read directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.setupProvider(args[0])
			if err != nil {
				return err
			}

			configs, err := p.Load()
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(configs); err != nil {
				return fmt.Errorf("failed to encode setup: %w", err)
			}
			return enc.Close()
		},
	}
}

func (a *app) setupProvider(arg string) (*setup.Provider, error) {
	ext := strings.ToLower(filepath.Ext(arg))
	if ext == ".yaml" || ext == ".yml" {
		name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		return setup.NewProvider(name, arg, a.setups.Logger()), nil
	}
	return a.setups.Setup(arg)
}

func newValidateCmd(a *app) *cobra.Command {
	var (
		requireControl bool
		concurrency    int
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every robot and setup file below the asset root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := validation.Options{
				Concurrency:    a.cfg.Validation.Concurrency,
				RequireControl: requireControl,
			}
			if concurrency > 0 {
				opts.Concurrency = concurrency
			}

			log := logger.NewComponentLoggerFromConfig(common.ComponentValidation, a.cfg.Logging)
			report, err := validation.Validate(cmd.Context(), a.robots, a.setups, opts, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "✗ %s\n", issue)
			}
			fmt.Fprintf(out, "%d robot(s), %d setup(s), %d record(s), %d issue(s)\n",
				report.Robots, report.Setups, report.Records, len(report.Issues))

			if !report.OK() {
				return fmt.Errorf("validation failed with %d issue(s)", len(report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&requireControl, "require-control", false, "report robots without control.yaml")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "files validated in parallel (default from config)")
	return cmd
}

func newSchemaCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:       "schema " + strings.Join(schema.Names(), "|"),
		Short:     "Print the JSON Schema of a configuration file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: schema.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := schema.ByName(args[0])
			if !ok {
				return fmt.Errorf("unknown schema %q (available: %s)", args[0], strings.Join(schema.Names(), ", "))
			}

			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
