package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sgodwincs/cargo-mutants/internal/adapter"
	"github.com/sgodwincs/cargo-mutants/internal/controller"
	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

// SelectArgs contains the inputs of one source selection.
type SelectArgs struct {
	// Root is the project directory.
	Root m.Path
	// Overrides holds command-line values merged over the config file.
	Overrides m.Settings
	// NoConfig skips reading the config file.
	NoConfig bool
}

// ListArgs contains the arguments for the annotated listing.
type ListArgs struct {
	SelectArgs
	// Jobs bounds how many files are counted at once; zero means no bound.
	Jobs int
}

// PrintConfigArgs contains the arguments for printing the effective config.
type PrintConfigArgs struct {
	SelectArgs
	// Format is "toml" or "yaml".
	Format string
}

// InitArgs contains the arguments for writing a default config file.
type InitArgs struct {
	Root m.Path
}

// Workflow runs the source selection pipeline for the CLI commands.
type Workflow interface {
	Select(ctx context.Context, args SelectArgs) (m.Selection, m.Options, error)
	ListFiles(ctx context.Context, args SelectArgs) error
	List(ctx context.Context, args ListArgs) error
	PrintConfig(ctx context.Context, args PrintConfigArgs) error
	InitConfig(ctx context.Context, args InitArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ConfigStore
	adapter.MutantCounter
	controller.Reporter
	ConfigLoader
	Discoverer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	configStore adapter.ConfigStore,
	counter adapter.MutantCounter,
	reporter controller.Reporter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ConfigStore:     configStore,
		MutantCounter:   counter,
		Reporter:        reporter,
		ConfigLoader:    NewConfigLoader(configStore),
		Discoverer:      NewDiscoverer(fsAdapter),
	}
}

// Select loads and merges the configuration, then discovers and filters the
// project's source files. It does all its work on the calling goroutine.
func (w *workflow) Select(ctx context.Context, args SelectArgs) (m.Selection, m.Options, error) {
	opts, err := w.effectiveOptions(ctx, args)
	if err != nil {
		return m.Selection{}, m.Options{}, err
	}

	candidates, err := w.Discover(ctx, args.Root)
	if err != nil {
		slog.Error("Failed to discover source files", "root", args.Root, "error", err)
		return m.Selection{}, m.Options{}, err
	}

	selection := FilterSources(candidates, opts)

	slog.Debug("selected source files",
		"root", args.Root, "candidates", len(candidates), "selected", selection.Len())

	return selection, opts, nil
}

func (w *workflow) effectiveOptions(ctx context.Context, args SelectArgs) (m.Options, error) {
	fileOpts := m.NewOptions(m.Settings{})

	if !args.NoConfig {
		loaded, err := w.LoadOptions(ctx, args.Root)
		if err != nil {
			slog.Error("Failed to load config", "root", args.Root, "error", err)
			return m.Options{}, err
		}

		fileOpts = loaded
	}

	opts, err := MergeOptions(fileOpts, args.Overrides)
	if err != nil {
		slog.Error("Failed to merge command-line options", "error", err)
		return m.Options{}, err
	}

	return opts, nil
}

// ListFiles prints the selected paths.
func (w *workflow) ListFiles(ctx context.Context, args SelectArgs) error {
	selection, _, err := w.Select(ctx, args)
	if err != nil {
		return err
	}

	if err := w.DisplayFiles(ctx, selection); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// List prints the selected paths with the mutant count of each.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	selection, _, err := w.Select(ctx, args.SelectArgs)
	if err != nil {
		return err
	}

	counts, err := w.countMutants(ctx, selection, args.Jobs)
	if err != nil {
		slog.Error("Failed to count mutants", "error", err)
		return err
	}

	if err := w.DisplayCounts(ctx, counts); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// countMutants asks the counter about every file, at most jobs at a time.
// Results keep the selection order.
func (w *workflow) countMutants(ctx context.Context, selection m.Selection, jobs int) ([]m.FileCount, error) {
	files := selection.Files()
	counts := make([]m.FileCount, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	if jobs > 0 {
		group.SetLimit(jobs)
	}

	for i, file := range files {
		group.Go(func() error {
			n, err := w.CountMutants(groupCtx, file)
			if err != nil {
				return fmt.Errorf("count mutants in %s: %w", file.ShortPath, err)
			}

			counts[i] = m.FileCount{File: file, Mutants: n}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return counts, nil
}

// PrintConfig prints the effective options in the requested format.
func (w *workflow) PrintConfig(ctx context.Context, args PrintConfigArgs) error {
	opts, err := w.effectiveOptions(ctx, args.SelectArgs)
	if err != nil {
		return err
	}

	content, err := w.Encode(opts.Settings(), args.Format)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := w.DisplayConfig(ctx, content); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// InitConfig writes a config file with every list option empty. It refuses
// to replace an existing file.
func (w *workflow) InitConfig(ctx context.Context, args InitArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := w.FileInfo(args.Root)
	if err != nil {
		return fmt.Errorf("project root: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("project root %s: %w", args.Root, errNotDirectory)
	}

	path := w.Path(args.Root)

	_, err = w.FileInfo(path)
	if err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	content, err := w.Encode(m.Settings{}, "toml")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := w.WriteFile(path, content, 0o644); err != nil {
		slog.Error("Failed to write config file", "path", path, "error", err)
		return fmt.Errorf("write config file: %w", err)
	}

	slog.Info("wrote config file", "path", path)

	return nil
}
