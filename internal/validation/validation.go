// Package validation checks every robot and setup file of an asset tree.
package validation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arena-sim/arena-robots/internal/logger"
	"github.com/arena-sim/arena-robots/pkg/robot"
	"github.com/arena-sim/arena-robots/pkg/setup"
	"golang.org/x/sync/errgroup"
)

// Issue kinds.
const (
	KindModelParams  = "model_params"
	KindControl      = "control"
	KindSetup        = "setup"
	KindUnknownRobot = "unknown_robot"
)

// Issue is a single validation failure.
type Issue struct {
	Kind string
	Name string
	Err  error
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %v", i.Kind, i.Name, i.Err)
}

// Report collects the outcome of a validation run.
type Report struct {
	Robots  int
	Setups  int
	Records int
	Issues  []Issue
}

// OK reports whether no issue was found.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Options configures a validation run.
type Options struct {
	// Concurrency bounds the number of files checked in parallel. Values below 1 mean 1.
	Concurrency int

	// RequireControl reports robots without a control.yaml.
	RequireControl bool
}

// Validate loads every robot of robots and every setup of setups.
// It keeps going after failures; all of them end up in the report.
// The returned error is only set for failures to enumerate the trees or context cancellation.
// A missing setup directory counts as no setups.
func Validate(ctx context.Context, robots *robot.Tree, setups *setup.Tree, opts Options, log *logger.Logger) (*Report, error) {
	log = logger.OrNop(log)

	robotNames, err := robots.Names()
	if err != nil {
		return nil, err
	}
	setupNames, err := setups.Names()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	robotIssues := make([][]Issue, len(robotNames))
	setupIssues := make([][]Issue, len(setupNames))
	setupRecords := make([]int, len(setupNames))

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range robotNames {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			robotIssues[i] = checkRobot(robots, name, opts)
			return nil
		})
	}

	for i, name := range setupNames {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			setupRecords[i], setupIssues[i] = checkSetup(robots, setups, name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validation aborted: %w", err)
	}

	report := &Report{Robots: len(robotNames), Setups: len(setupNames)}
	for _, issues := range robotIssues {
		report.Issues = append(report.Issues, issues...)
	}
	for i, issues := range setupIssues {
		report.Records += setupRecords[i]
		report.Issues = append(report.Issues, issues...)
	}

	for _, issue := range report.Issues {
		log.Warnw("validation issue", "kind", issue.Kind, "name", issue.Name, "error", issue.Err)
	}
	log.Infow("validation finished",
		"robots", report.Robots, "setups", report.Setups, "records", report.Records, "issues", len(report.Issues))

	return report, nil
}

func checkRobot(robots *robot.Tree, name string, opts Options) []Issue {
	p, err := robots.Robot(name)
	if err != nil {
		return []Issue{{Kind: KindModelParams, Name: name, Err: err}}
	}

	var issues []Issue
	if _, err := p.ModelParams(); err != nil {
		issues = append(issues, Issue{Kind: KindModelParams, Name: name, Err: err})
	}

	if !opts.RequireControl && !exists(p.Dir(), robot.ControlFile) {
		return issues
	}
	if _, err := p.Control(); err != nil {
		issues = append(issues, Issue{Kind: KindControl, Name: name, Err: err})
	}
	return issues
}

func checkSetup(robots *robot.Tree, setups *setup.Tree, name string) (int, []Issue) {
	p, err := setups.Setup(name)
	if err != nil {
		return 0, []Issue{{Kind: KindSetup, Name: name, Err: err}}
	}

	configs, err := p.Load()
	if err != nil {
		return 0, []Issue{{Kind: KindSetup, Name: name, Err: err}}
	}

	var issues []Issue
	seen := make(map[string]struct{})
	for _, cfg := range configs {
		if _, dup := seen[cfg.Robot]; dup {
			continue
		}
		seen[cfg.Robot] = struct{}{}
		if !robots.Has(cfg.Robot) {
			issues = append(issues, Issue{
				Kind: KindUnknownRobot,
				Name: name,
				Err:  fmt.Errorf("robot %q not found in %s", cfg.Robot, robots.Dir()),
			})
		}
	}
	return len(configs), issues
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
