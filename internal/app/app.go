// Package app implements the application layer for warpack.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/warpack/warpack/internal/adapters/detector"           //nolint:depguard // Wired in app layer
	"github.com/warpack/warpack/internal/adapters/linear"             //nolint:depguard // Wired in app layer
	"github.com/warpack/warpack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/warpack/warpack/internal/adapters/tui"                //nolint:depguard // Wired in app layer
	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"github.com/warpack/warpack/internal/engine/planner"
	"github.com/warpack/warpack/internal/engine/runner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App implements the staging workflows behind the CLI commands.
type App struct {
	configLoader ports.ConfigLoader
	planner      *planner.Planner
	runner       *runner.Runner
	hasher       ports.Hasher
	manifests    ports.ManifestStore
	telemetry    ports.Telemetry
	feed         *progrock.Feed
	logger       ports.Logger

	configPath string
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	planner *planner.Planner,
	runner *runner.Runner,
	hasher ports.Hasher,
	manifests ports.ManifestStore,
	telemetry ports.Telemetry,
	feed *progrock.Feed,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		planner:      planner,
		runner:       runner,
		hasher:       hasher,
		manifests:    manifests,
		telemetry:    telemetry,
		feed:         feed,
		logger:       log,
		configPath:   ".",
	}
}

// SetConfigPath points the App at a configuration file or directory.
// The default is the current directory.
func (a *App) SetConfigPath(path string) {
	a.configPath = path
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// StageOptions configures a staging run.
type StageOptions struct {
	// Parallelism bounds concurrent task execution. Values below one
	// select the number of CPUs.
	Parallelism int

	// OutputMode overrides progress rendering: "tui", "linear" or "ci".
	// Empty or "auto" detects from the environment.
	OutputMode string
}

// Stage populates the staging tree: application files, public files and
// unpacked packages. The descriptor and the archive are left alone.
func (a *App) Stage(ctx context.Context, opts StageOptions) error {
	return a.execute(ctx, []string{domain.TargetApplication, domain.TargetStatic}, opts)
}

// Package runs the full pipeline: staging, descriptor rendering and the
// archiver invocation.
func (a *App) Package(ctx context.Context, opts StageOptions) error {
	return a.execute(ctx, []string{domain.TargetArchive}, opts)
}

// execute plans and runs the given targets, rendering progress as it goes,
// and records the staging manifest once the run succeeds.
func (a *App) execute(ctx context.Context, targetNames []string, opts StageOptions) error {
	// 1. Load the configuration
	cfg, err := a.configLoader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Plan the task graph
	graph, err := a.planner.Plan(cfg)
	if err != nil {
		return zerr.Wrap(err, "planning failed")
	}

	// 3. Initialize the renderer with the outer context, so a run failure
	// does not tear the display down before it has drained the feed.
	renderer := a.newRenderer(ctx, opts.OutputMode)

	// 4. Run renderer and runner concurrently
	g, ctx := errgroup.WithContext(ctx)

	// Renderer routine
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		return renderer.Wait()
	})

	// Runner routine
	g.Go(func() error {
		// Closing the recorder ends the feed, which lets the renderer
		// drain the remaining updates and exit on its own.
		defer func() {
			_ = a.telemetry.Close()
		}()

		if err := a.runner.Run(ctx, cfg, graph, targetNames, opts.Parallelism); err != nil {
			return errors.Join(domain.ErrTaskExecutionFailed, err)
		}
		return nil
	})

	runErr := g.Wait()
	_ = renderer.Stop()
	if runErr != nil {
		return runErr
	}

	return a.writeManifest(cfg)
}

// newRenderer picks the progress renderer for this run. Interactive runs
// get the task display, CI and non-TTY runs get plain lines.
func (a *App) newRenderer(ctx context.Context, outputMode string) ports.ProgressRenderer {
	mode := detector.ResolveMode(detector.DetectEnvironment(), outputMode)
	if mode == detector.ModeTUI {
		opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		return tui.NewRenderer(tui.NewModel(a.feed), opts...)
	}
	return linear.NewRenderer(a.feed, os.Stderr)
}

// writeManifest records the digests of the staged tree next to the staging
// directory, so later verify runs can detect drift.
func (a *App) writeManifest(cfg *domain.Config) error {
	manifest, err := a.hasher.TreeDigests(cfg.StagingDir)
	if err != nil {
		return zerr.Wrap(err, "failed to hash staging tree")
	}
	return a.manifests.Write(domain.ManifestPath(cfg.StagingDir), manifest)
}

// Plan loads the configuration and returns the planned task graph without
// executing anything.
func (a *App) Plan(_ context.Context) (*domain.Graph, error) {
	cfg, err := a.configLoader.Load(a.configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return a.planner.Plan(cfg)
}

// Verify compares the staging tree against the recorded manifest. A
// non-empty diff is returned alongside ErrManifestMismatch, so callers can
// report the paths that drifted.
func (a *App) Verify(_ context.Context) (domain.ManifestDiff, error) {
	cfg, err := a.configLoader.Load(a.configPath)
	if err != nil {
		return domain.ManifestDiff{}, zerr.Wrap(err, "failed to load configuration")
	}

	recorded, err := a.manifests.Read(domain.ManifestPath(cfg.StagingDir))
	if err != nil {
		return domain.ManifestDiff{}, err
	}

	current, err := a.hasher.TreeDigests(cfg.StagingDir)
	if err != nil {
		return domain.ManifestDiff{}, zerr.Wrap(err, "failed to hash staging tree")
	}

	diff := recorded.Diff(current)
	if !diff.Empty() {
		err := domain.ErrManifestMismatch
		err = zerr.With(err, "missing", len(diff.Missing))
		err = zerr.With(err, "changed", len(diff.Changed))
		err = zerr.With(err, "extra", len(diff.Extra))
		return diff, err
	}
	return diff, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Archive also removes the packaged archive output.
	Archive bool
}

// Clean removes the staging tree and its manifest. With options.Archive
// set, the archive output is removed as well.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cfg, err := a.configLoader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error

	// Helper to remove a path and log the action
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(cfg.StagingDir, "staging directory")
	remove(domain.ManifestPath(cfg.StagingDir), "staging manifest")
	if options.Archive {
		remove(cfg.Archive.OutputPath, "archive output")
	}

	return errs
}
