package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/scomposer/composer"
	"github.com/viant/scomposer/config"
	"github.com/viant/scomposer/emitter"
	"github.com/viant/scomposer/inspector"
	"github.com/viant/scomposer/inspector/graph"
	"github.com/viant/scomposer/inspector/repository"
	"github.com/viant/scomposer/watch"
)

// runner wires the pipeline from config and delivers results
type runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	detector *repository.Detector
	composer *composer.Composer
	sink     emitter.Sink
	stderr   io.Writer
	last     string
}

func newRunner(cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) (*runner, error) {
	formatter, err := emitter.NewFormatter(emitter.LineEnding(cfg.Output.LineEnding))
	if err != nil {
		return nil, err
	}
	sink, err := emitter.NewSink(emitter.Target(cfg.Output.Target), cfg.Output.Path, stdout)
	if err != nil {
		return nil, err
	}
	detector := repository.New(
		repository.WithExcludeDirs(cfg.Exclude.Dirs...),
		repository.WithExcludeGlobs(cfg.Exclude.FilesGlob...),
		repository.WithLogger(logger),
	)
	factory := inspector.NewFactory(graph.DefaultConfig(), detector, logger)
	return &runner{
		cfg:      cfg,
		logger:   logger,
		detector: detector,
		composer: composer.New(factory, formatter, composer.WithBaseType(cfg.BaseType), composer.WithLogger(logger)),
		sink:     sink,
		stderr:   stderr,
	}, nil
}

// once composes and delivers, any failure aborts without output
func (r *runner) once(ctx context.Context, project, namespace string) error {
	result, err := r.composer.Compose(ctx, project, namespace)
	if err != nil {
		return err
	}
	return r.deliver(ctx, result)
}

// watch composes on start and after every change, delivering only when the output changed
func (r *runner) watch(ctx context.Context, project, namespace string) error {
	info, err := r.detector.DetectProject(project)
	if err != nil {
		return err
	}
	watcher, err := watch.New(info.RootPath,
		watch.WithDebounce(r.cfg.Watch.Debounce),
		watch.WithExcludeDirs(r.cfg.Exclude.Dirs...),
		watch.WithLogger(r.logger),
	)
	if err != nil {
		return err
	}
	refresh := func(ctx context.Context) error {
		return r.refresh(ctx, info.ProjectFile, namespace)
	}
	if err := refresh(ctx); err != nil {
		return err
	}
	r.logger.Info("watching for changes", "root", info.RootPath)
	return watcher.Run(ctx, refresh)
}

// refresh composes and delivers unless the output matches the last delivery; compose failures are logged
func (r *runner) refresh(ctx context.Context, project, namespace string) error {
	result, err := r.composer.Compose(ctx, project, namespace)
	if err != nil {
		r.logger.Error("compose failed", "error", err)
		return nil
	}
	if result.Fingerprint == r.last {
		r.logger.Debug("output unchanged", "fingerprint", result.Fingerprint)
		return nil
	}
	return r.deliver(ctx, result)
}

func (r *runner) deliver(ctx context.Context, result *composer.Result) error {
	if err := r.sink.Deliver(ctx, result.Text); err != nil {
		return err
	}
	r.last = result.Fingerprint
	fmt.Fprintln(r.stderr, r.sink.Confirmation())
	fmt.Fprintf(r.stderr, "entry %s, %d namespaces, %d members, fingerprint %s\n",
		result.Unit.Entry, len(result.Unit.Namespaces), len(result.Unit.Members), result.Fingerprint)
	if r.cfg.Beep {
		fmt.Fprint(r.stderr, "\a")
	}
	return nil
}
